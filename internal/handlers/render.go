package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/market"
	"github.com/MegaGrindStone/finbot-web/internal/models"
	"github.com/tmaxmax/go-sse"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// SSE event types pushed to the page.
var (
	messageSSEType    = sse.Type("message")
	composingSSEType  = sse.Type("composing")
	connectionSSEType = sse.Type("connection")
	draftSSEType      = sse.Type("draft")
	closePageSSEType  = sse.Type("closePage")
)

type message struct {
	ID   string
	Role string
	Text string
	HTML template.HTML
	Time string
}

type connection struct {
	PageID    string
	Connected bool
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
}

// newMarkdown builds the renderer for assistant replies. Raw HTML in the source is dropped, since the
// text comes from a remote service.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
}

func (m Main) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (m Main) messageView(msg models.Message) (message, error) {
	v := message{
		ID:   msg.ID,
		Role: string(msg.Role),
		Text: msg.Text,
		Time: msg.CreatedAt.Format("3:04:05 PM"),
	}
	if msg.Role != models.RoleAssistant {
		return v, nil
	}

	h, err := m.renderMarkdown(msg.Text)
	if err != nil {
		return message{}, err
	}
	v.HTML = h
	return v, nil
}

func (m Main) renderPartial(name string, data any) (string, error) {
	var sb strings.Builder
	if err := m.templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// publisher returns the chat listener that mirrors panel events to the page's SSE topic.
func (m Main) publisher(pageID string) chat.Listener {
	topic := pageTopic(pageID)
	logger := m.logger.With().Str("pageID", pageID).Logger()

	return func(e chat.Event) {
		var msg sse.Message

		switch e.Kind {
		case chat.EventMessage:
			v, err := m.messageView(e.Message)
			if err != nil {
				logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to render message")
				return
			}
			body, err := m.renderPartial("message", v)
			if err != nil {
				logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to execute message template")
				return
			}
			msg.Type = messageSSEType
			msg.AppendData(body)
		case chat.EventComposing:
			msg.Type = composingSSEType
			if e.Composing {
				msg.AppendData("true")
			} else {
				msg.AppendData("false")
			}
		case chat.EventStatus:
			body, err := m.renderPartial("connection_banner", connection{
				PageID:    pageID,
				Connected: e.Status.Connected(),
			})
			if err != nil {
				logger.Error().Str(errLoggerKey, err.Error()).Msg("Failed to execute connection template")
				return
			}
			msg.Type = connectionSSEType
			msg.AppendData(body)
		case chat.EventDraft:
			// Browsers drop events without data, so the draft is sent JSON-quoted to survive being empty.
			draft, err := json.Marshal(e.Draft)
			if err != nil {
				return
			}
			msg.Type = draftSSEType
			msg.AppendData(string(draft))
		default:
			return
		}

		if err := m.sseSrv.Publish(&msg, topic); err != nil {
			logger.Error().Str(errLoggerKey, err.Error()).Str("event", e.Kind.String()).Msg("Failed to publish event")
		}
	}
}

type viewTab struct {
	View   market.View
	Label  string
	Active bool
}

type sidebar struct {
	PageID   string
	Tabs     []viewTab
	View     market.View
	Snapshot market.Snapshot
}

func sidebarView(pageID string, s *market.Sidebar) sidebar {
	current := s.View()
	views := market.Views()
	tabs := make([]viewTab, len(views))
	for i, v := range views {
		tabs[i] = viewTab{View: v, Label: v.Label(), Active: v == current}
	}
	return sidebar{
		PageID:   pageID,
		Tabs:     tabs,
		View:     current,
		Snapshot: s.Snapshot(),
	}
}
