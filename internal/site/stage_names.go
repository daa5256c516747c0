package site

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepare    StageName = "prepare"
	StagePosts      StageName = "posts"
	StagePages      StageName = "pages"
	StageTaxonomies StageName = "taxonomies"
	StageHome       StageName = "home"
	StageArchive    StageName = "archive"
	StageSitemap    StageName = "sitemap"
	StageSearch     StageName = "search"
	StageFeed       StageName = "feed"
	StageAssets     StageName = "assets"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// defaultStages is the full site pipeline.
func defaultStages() []StageDef {
	return []StageDef{
		{StagePrepare, stagePrepare},
		{StagePosts, stagePosts},
		{StagePages, stagePages},
		{StageTaxonomies, stageTaxonomies},
		{StageHome, stageHome},
		{StageArchive, stageArchive},
		{StageSitemap, stageSitemap},
		{StageSearch, stageSearch},
		{StageFeed, stageFeed},
		{StageAssets, stageAssets},
	}
}
