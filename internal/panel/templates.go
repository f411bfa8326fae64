package panel

// panelTemplate is the html/template for the injected panel fragment.
const panelTemplate = `<style data-hypeless-ui>
.hypeless-highlight { background: var(--highlight-normal); border-radius: 2px; cursor: help; }
.hypeless-highlight.hypeless-preview { background: var(--highlight-preview); }
.hypeless-highlight.hypeless-focus { background: var(--highlight-focus); outline: 2px solid var(--highlight-focus); }
.hypeless-highlight.hypeless-hidden { background: none; outline: none; cursor: inherit; }
.hypeless-ace-highlight { position: absolute; background: rgba(255, 221, 51, 0.5); }
#hypeless-sidebar, #hypeless-overleaf-sidebar { position: fixed; top: 0; right: 0; height: 100vh; overflow-y: auto; background: #fff; color: #222; border-left: 1px solid #ddd; font: 14px sans-serif; z-index: 2147483646; }
#hypeless-sidebar.collapsed, #hypeless-overleaf-sidebar.collapsed { display: none; }
#hypeless-header { display: flex; justify-content: space-between; align-items: center; padding: 8px; border-bottom: 1px solid #eee; font-weight: bold; }
.hypeless-item { padding: 6px 8px; border-bottom: 1px solid #f2f2f2; cursor: pointer; }
.hypeless-item:hover { background: #fff8db; }
.hypeless-empty { padding: 8px; color: #999; }
#hypeless-help-popup { display: none; padding: 8px; font-size: 12px; }
#hypeless-help-popup.visible { display: block; }
#hypeless-resizer { position: absolute; top: 0; left: 0; width: 5px; height: 100%; cursor: ew-resize; }
#hypeless-float-btn { position: fixed; right: 16px; bottom: 16px; z-index: 2147483646; }
#hypeless-tooltip { position: absolute; display: none; max-width: 280px; padding: 6px; background: #333; color: #fff; font-size: 12px; border-radius: 4px; z-index: 2147483647; }
#hypeless-answer { padding: 8px; border-top: 1px solid #eee; }
</style>
<div id="{{.ID}}" class="{{if .Collapsed}}collapsed{{end}}{{if .Resizing}} resizing{{end}}" style="width: {{.Width}}px" data-hypeless-ui>
  <div id="hypeless-header">
    <span>{{.Header}}</span>
    <div>
      {{if .Structured}}<button id="hypeless-suggestions" title="AI Suggestions">&#x2728; AI</button>{{end}}
      <button id="hypeless-help">Info</button>
      <button id="hypeless-toggle">Hide</button>
    </div>
  </div>
  <div id="hypeless-content">
    {{- range .Items}}
    <div class="hypeless-item" data-term="{{.Term}}">
      <b>{{.Term}}</b> ({{.Count}})<br>
      <small>{{.Explanation}}</small>
    </div>
    {{- else}}
    <p class="hypeless-empty">No hype terms found.</p>
    {{- end}}
  </div>
  <div id="hypeless-help-popup"{{if .HelpOpen}} class="visible"{{end}}>
    <p>Highlighted words are common hype terms in scientific writing. Hover a row to preview every occurrence, click it to jump to the next one.</p>
    <p>Hover a highlight to see why the term is flagged. Matches inside commands, math and environment markers are ignored in the editor.</p>
  </div>
  {{- with .Answer}}
  <div id="hypeless-answer">
    <p class="hypeless-question">{{.Question}}</p>
    {{.HTML}}
  </div>
  {{- end}}
  <div id="hypeless-resizer"></div>
</div>
<button id="hypeless-float-btn" title="Show HypeLessLi sidebar" style="display: {{if .Collapsed}}block{{else}}none{{end}}" data-hypeless-ui>&#x1F4DD;</button>
<div id="hypeless-tooltip" data-hypeless-ui></div>
`
