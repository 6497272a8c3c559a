package viz

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title  string // page title; "Citations" if empty
	Layout string // one of ValidLayouts; "" means "tree"
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"tree", "force", "circle", "grid"}

// GenerateHTML renders the graph as a standalone page that loads
// Cytoscape.js from a CDN.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = "Citations"
	}

	if graph.IsEmpty() {
		var buf bytes.Buffer
		if err := compiledTemplate.ExecuteTemplate(&buf, "empty", title); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func validateLayout(layout string) error {
	if layout == "" {
		return nil
	}
	for _, l := range ValidLayouts {
		if layout == l {
			return nil
		}
	}
	return fmt.Errorf("invalid layout %q: must be one of %s", layout, strings.Join(ValidLayouts, ", "))
}

type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape maps layout names to Cytoscape.js layout algorithms.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "force":
		return "cose"
	case "circle", "grid":
		return layout
	default:
		return "breadthfirst"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 360px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
      white-space: pre-wrap;
    }
    #tooltip .id { font-size: 10px; color: #888; margin-bottom: 4px; }
    #tooltip .title { font-weight: bold; margin-bottom: 4px; }
    #tooltip .detail { color: #555; margin: 2px 0; }
    #tooltip .notes { font-style: italic; color: #666; margin-top: 6px; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'shape': 'round-rectangle',
              'background-color': 'white',
              'border-width': 2,
              'border-color': 'data(color)',
              'label': 'data(label)',
              'text-wrap': 'wrap',
              'text-valign': 'center',
              'font-size': 'data(fontSize)',
              'width': 'label',
              'height': 'label',
              'padding': '8px'
            }
          },
          {
            selector: 'node[?superseded]',
            style: { 'color': '#888', 'border-style': 'dotted' }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-color': '#95A5A6',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'width': 2
            }
          },
          {
            selector: 'edge[kind="replaced"]',
            style: { 'line-style': 'dashed', 'line-color': '#E8923A', 'target-arrow-color': '#E8923A' }
          },
          { selector: 'node.highlighted', style: { 'border-width': 4 } },
          { selector: '.dimmed', style: { 'opacity': 0.25 } }
        ],
        layout: { name: layout, directed: true, animate: false, spacingFactor: 1.2 }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (str === undefined || str === null) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function nodeTooltip(data) {
        let html = '<div class="id">' + escapeHtml(data.id) + '</div>';
        html += '<div class="title">' + escapeHtml(data.title) + '</div>';
        if (data.authors) html += '<div class="detail">' + escapeHtml(data.authors) + '</div>';
        html += '<div class="detail">' + escapeHtml(data.year) + '</div>';
        if (!data.url) html += '<div class="detail">No PDF</div>';
        if (data.tooltip) html += '<div class="notes">' + escapeHtml(data.tooltip) + '</div>';
        return html;
      }

      function edgeTooltip(data) {
        let html = '<div class="id">' + escapeHtml(data.kind) + '</div>';
        html += '<div class="title">' + escapeHtml(data.source) + ' → ' + escapeHtml(data.target) + '</div>';
        if (data.score) html += '<div class="detail">score ' + data.score.toFixed(1) + '</div>';
        return html;
      }

      function show(evt, html) {
        tooltip.innerHTML = html;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hide() { tooltip.style.display = 'none'; }

      cy.on('mouseover', 'node', function(evt) { show(evt, nodeTooltip(evt.target.data())); });
      cy.on('mouseover', 'edge', function(evt) { show(evt, edgeTooltip(evt.target.data())); });
      cy.on('mouseout', 'node, edge', hide);

      cy.on('dbltap', 'node', function(evt) {
        const url = evt.target.data('url');
        if (url) window.open('file://' + url, '_blank');
      });

      cy.on('tap', 'node', function(evt) {
        const near = evt.target.closedNeighborhood();
        cy.elements().removeClass('highlighted dimmed');
        near.nodes().addClass('highlighted');
        cy.elements().not(near).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) cy.elements().removeClass('highlighted dimmed');
      });
    })();
  </script>
</body>
</html>
{{define "empty"}}<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.}} - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state { text-align: center; color: #666; }
    code { background: #e0e0e0; padding: 2px 6px; border-radius: 3px; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No papers</h2>
    <p>The bibliography export has no rows with a publication year.</p>
    <p>Check the export with <code>citegraph records</code></p>
  </div>
</body>
</html>
{{end}}`
