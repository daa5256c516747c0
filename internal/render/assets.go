package render

// Asset is a static file copied verbatim into the output tree.
type Asset struct {
	Path string
	Body []byte
}

// Assets returns the client-side scripts and the GitHub Pages marker.
func Assets() []Asset {
	return []Asset{
		{Path: "assets/js/telemetry.js", Body: []byte(telemetryJS)},
		{Path: "assets/js/search.js", Body: []byte(searchJS)},
		{Path: ".nojekyll", Body: []byte("\n")},
	}
}

const telemetryJS = `(function(){
  function isPlausible(){ return typeof window.plausible === 'function'; }
  function hasGA(){ return typeof window.gtag === 'function'; }
  function sendEvent(name, props){
    try{
      if(isPlausible()){ window.plausible(name, { props: props || {} }); }
      if(hasGA()){ window.gtag('event', name, props || {}); }
    }catch(e){}
  }
  function onLinkClick(e){
    var a = e.target.closest('a');
    if(!a) return;
    var isExternal = a.host && a.host !== window.location.host;
    var ev = (a.dataset.event || (isExternal ? 'outbound_click' : null));
    if(!ev) return;
    sendEvent(ev, {
      href: a.href,
      net: a.dataset.net || '',
      asin: a.dataset.asin || '',
      label: a.dataset.label || a.textContent.trim().slice(0,80)
    });
  }
  document.addEventListener('click', onLinkClick, {capture:true});
  function ctaImpressions(){
    document.querySelectorAll('[data-event="cta_impression"]').forEach(function(el){
      if(el.dataset._sent) return;
      el.dataset._sent = '1';
      sendEvent('cta_impression', {id: el.id || '', label: el.dataset.label || ''});
    });
  }
  if(document.readyState !== 'loading') ctaImpressions();
  else document.addEventListener('DOMContentLoaded', ctaImpressions);
  window.SS_trackSearch = function(q){
    if(!q) return;
    sendEvent('search', {query: String(q).slice(0,120)});
  };
})();
`

const searchJS = `(function(){
  var q = document.getElementById('q'), btn = document.getElementById('qbtn'), out = document.getElementById('qresults');
  if(!q || !btn || !out) return;
  var idx = [];
  fetch(out.dataset.index).then(function(r){ return r.json(); }).then(function(d){ idx = d; });
  function esc(s){ var d = document.createElement('div'); d.textContent = s; return d.innerHTML; }
  function run(){
    var term = (q.value || '').toLowerCase().trim();
    if(!term){ out.innerHTML = ''; return; }
    if(window.SS_trackSearch) window.SS_trackSearch(term);
    var parts = term.split(/\s+/);
    var res = idx.map(function(it){
      var hay = (it.title + ' ' + it.category + ' ' + it.tags.join(' ') + ' ' + it.text).toLowerCase();
      var score = 0;
      parts.forEach(function(p){ if(hay.indexOf(p) >= 0) score++; });
      return [score, it];
    }).filter(function(x){ return x[0] > 0; })
      .sort(function(a, b){ return b[0] - a[0]; })
      .slice(0, 20).map(function(x){ return x[1]; });
    out.innerHTML = res.length
      ? '<ul>' + res.map(function(it){ return '<li><a href="' + esc(it.url) + '">' + esc(it.title) + '</a> <span class="tag is-light">' + esc(it.category) + '</span></li>'; }).join('') + '</ul>'
      : '<p><em>No results</em></p>';
  }
  btn.addEventListener('click', run);
  q.addEventListener('keydown', function(e){ if(e.key === 'Enter') run(); });
})();
`
