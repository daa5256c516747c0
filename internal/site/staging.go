package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// carriedOver are entries of an existing output directory moved into each
// new build so repository history survives promotion.
var carriedOver = []string{".git"}

// beginStaging creates an empty sibling staging directory <output>_stage.
func beginStaging(outputDir string) (string, error) {
	stage := filepath.Clean(outputDir) + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return "", serrors.StagingError("clean", err)
	}
	if err := os.MkdirAll(stage, 0o750); err != nil {
		return "", serrors.StagingError("create", err)
	}
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", outputDir))
	return stage, nil
}

// rename is swapped in tests to simulate filesystem failures.
var rename = os.Rename

// finalizeStaging promotes stageDir to outputDir:
//  1. Carry .git over from the existing output.
//  2. Move the existing output to <output>.prev.
//  3. Rename staging to output and remove the backup.
//
// On failure the existing output, including carried entries, is restored.
func finalizeStaging(stageDir, outputDir string) error {
	if _, err := os.Stat(stageDir); err != nil {
		return serrors.StagingError("stat", fmt.Errorf("staging directory missing: %w", err))
	}
	outputDir = filepath.Clean(outputDir)
	_, statErr := os.Stat(outputDir)
	hasOutput := statErr == nil

	var carried []string
	restoreCarriedInto := func(dir string) {
		for _, name := range carried {
			if err := rename(filepath.Join(stageDir, name), filepath.Join(dir, name)); err != nil {
				slog.Error("Failed to restore carried-over entry", logfields.Path(filepath.Join(dir, name)), logfields.Error(err))
			}
		}
	}
	restoreCarried := func() { restoreCarriedInto(outputDir) }

	if hasOutput {
		for _, name := range carriedOver {
			src := filepath.Join(outputDir, name)
			if _, err := os.Lstat(src); err != nil {
				continue
			}
			if err := rename(src, filepath.Join(stageDir, name)); err != nil {
				restoreCarried()
				return serrors.StagingError("carry over "+name, err)
			}
			carried = append(carried, name)
		}
	}

	prev := outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		restoreCarried()
		return serrors.StagingError("remove backup", err)
	}
	if hasOutput {
		if err := rename(outputDir, prev); err != nil {
			restoreCarried()
			return serrors.StagingError("backup existing output", err)
		}
	}
	rollback := func() {
		if hasOutput {
			if err := rename(prev, outputDir); err != nil {
				slog.Error("Failed to restore previous output", logfields.Path(prev), logfields.Error(err))
				restoreCarriedInto(prev)
				return
			}
		}
		restoreCarried()
	}
	if err := os.MkdirAll(filepath.Dir(outputDir), 0o750); err != nil {
		rollback()
		return serrors.StagingError("create parent", err)
	}
	if err := rename(stageDir, outputDir); err != nil {
		rollback()
		return serrors.StagingError("promote", err)
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	slog.Debug("Promoted staging directory", logfields.Path(outputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build.
func abortStaging(stageDir string) {
	if stageDir == "" {
		return
	}
	if err := os.RemoveAll(stageDir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", slog.String("staging", stageDir), logfields.Error(err))
		return
	}
	slog.Debug("Removed staging directory after abort", slog.String("staging", stageDir))
}
