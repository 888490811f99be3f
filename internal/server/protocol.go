package server

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/muurk/picker/internal/catalog"
	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/picker"
)

// Operation names accepted in Request.Op
const (
	OpSetItems  = "set_items"
	OpSearch    = "search"
	OpToggle    = "toggle"
	OpSelectAll = "select_all"
	OpView      = "view"

	// OpHello is only sent by the server, once per connection.
	OpHello = "hello"
)

// Request is one client frame.
type Request struct {
	Op          string     `json:"op"`
	Items       []WireItem `json:"items,omitempty"`
	Text        string     `json:"text,omitempty"`
	Name        string     `json:"name,omitempty"`
	Selected    *bool      `json:"selected,omitempty"`
	VisibleOnly bool       `json:"visible_only,omitempty"`
}

// WireItem is an item as sent by clients.
type WireItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ViewItem is a visible item as returned to clients.
type ViewItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Selected    bool     `json:"selected"`
}

// WireError carries a ProtocolError in a response.
type WireError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Response answers every request, successful or not.
type Response struct {
	Session  string     `json:"session"`
	Op       string     `json:"op"`
	Search   string     `json:"search"`
	Items    []ViewItem `json:"items"`
	Total    int        `json:"total"`
	Selected []string   `json:"selected"`
	Error    *WireError `json:"error,omitempty"`
}

// Err converts the error field back into a *ProtocolError, or nil.
func (r *Response) Err() error {
	if r.Error == nil {
		return nil
	}
	return &ProtocolError{
		Kind:    ParseErrorKind(r.Error.Kind),
		Op:      r.Op,
		Message: r.Error.Message,
	}
}

type session = picker.Session[catalog.Details]

// decodeRequest parses one frame.
func decodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &ProtocolError{Kind: KindMalformed, Message: "request is not valid JSON", Err: err}
	}
	if req.Op == "" {
		return nil, newProtocolError(KindInvalidArgument, "", "op is required")
	}
	return &req, nil
}

// apply runs req against sess.
func apply(sess *session, req *Request) error {
	if sess.Closed() {
		return newProtocolError(KindClosed, req.Op, "session is closed")
	}

	switch req.Op {
	case OpSetItems:
		items := make([]picker.Item[catalog.Details], 0, len(req.Items))
		for i, it := range req.Items {
			if it.Name == "" {
				return newProtocolError(KindInvalidArgument, req.Op, "item %d has an empty name", i)
			}
			items = append(items, picker.Item[catalog.Details]{
				Name:    it.Name,
				Payload: catalog.Details{Description: it.Description, Tags: it.Tags},
			})
		}
		sess.SetSourceList(items)
		// Keep a remote client's active search applied to the new list.
		sess.Refilter()

	case OpSearch:
		sess.OnSearchTextChanged(req.Text)

	case OpToggle:
		if req.Name == "" {
			return newProtocolError(KindInvalidArgument, req.Op, "name is required")
		}
		current := sess.SelectedMap()[req.Name]
		if req.Selected != nil {
			current = *req.Selected
		}
		sess.ToggleSelected(req.Name, current)

	case OpSelectAll:
		if req.Selected == nil {
			return newProtocolError(KindInvalidArgument, req.Op, "selected is required")
		}
		if req.VisibleOnly {
			sess.SetVisibleSelected(*req.Selected)
		} else {
			sess.SetAllSelected(*req.Selected)
		}

	case OpView:
		// Read-only.

	default:
		return newProtocolError(KindUnknownOp, req.Op, "unknown op %q", req.Op)
	}
	return nil
}

// buildResponse snapshots sess. err, when non-nil, is reported in the
// response.
func buildResponse(sess *session, op string, err error) *Response {
	resp := &Response{
		Session:  sess.ID(),
		Op:       op,
		Search:   sess.SearchText(),
		Items:    []ViewItem{},
		Selected: sess.SelectedNames(),
	}

	merged := sess.ReadMergedView()
	resp.Total = len(merged)
	for _, it := range merged {
		if it.Hidden {
			continue
		}
		resp.Items = append(resp.Items, ViewItem{
			Name:        it.Name,
			Description: it.Payload.Description,
			Tags:        it.Payload.Tags,
			Selected:    it.Selected,
		})
	}

	if err != nil {
		perr, ok := err.(*ProtocolError)
		if !ok {
			perr = &ProtocolError{Kind: KindInternal, Op: op, Message: err.Error()}
		}
		resp.Error = &WireError{Kind: perr.Kind.String(), Message: perr.Message}
		logging.Debug("Request rejected",
			zap.String("session_id", sess.ID()),
			zap.String("op", op),
			zap.String("kind", perr.Kind.String()),
			zap.String("message", perr.Message),
		)
	}
	return resp
}
