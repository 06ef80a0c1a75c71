package finbotweb

import "embed"

// TemplateFS contains the embedded HTML templates used for rendering the chat page. Templates are split
// into the page layout, the page itself, and the partials that are re-rendered and pushed over SSE.
//
//go:embed templates/*
var TemplateFS embed.FS

// StaticFS contains the embedded stylesheet and the small script that wires the page to the server.
//
//go:embed static/*
var StaticFS embed.FS
