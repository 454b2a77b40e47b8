package live

import (
	"encoding/json"

	"github.com/vango-dev/toastkit/internal/errors"
	"github.com/vango-dev/toastkit/pkg/render"
	"github.com/vango-dev/toastkit/pkg/vdom"
)

// MessageType discriminates server and client messages.
type MessageType string

const (
	MessageReset   MessageType = "reset"
	MessagePatches MessageType = "patches"
	MessageEvent   MessageType = "event"
)

// ServerMessage is sent to browsers.
type ServerMessage struct {
	Type    MessageType `json:"type"`
	Seq     uint64      `json:"seq"`
	HTML    string      `json:"html,omitempty"`
	Patches []Frame     `json:"patches,omitempty"`
}

// Frame is the wire form of one vdom.Patch.
type Frame struct {
	Op     string `json:"op"`
	HID    string `json:"hid,omitempty"`
	Parent string `json:"parent,omitempty"`
	Index  int    `json:"index"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	HTML   string `json:"html,omitempty"`
}

// ClientMessage is sent by browsers.
type ClientMessage struct {
	Type  MessageType `json:"type"`
	HID   string      `json:"hid"`
	Event string      `json:"event"`
}

var opNames = map[vdom.PatchOp]string{
	vdom.PatchSetText:     "text",
	vdom.PatchSetAttr:     "attr",
	vdom.PatchRemoveAttr:  "rmattr",
	vdom.PatchInsertNode:  "insert",
	vdom.PatchRemoveNode:  "remove",
	vdom.PatchMoveNode:    "move",
	vdom.PatchReplaceNode: "replace",
}

// EncodeFrames converts patches to their wire form. Inserted and replaced
// nodes are rendered to escaped HTML.
func EncodeFrames(r *render.Renderer, patches []vdom.Patch) ([]Frame, error) {
	frames := make([]Frame, 0, len(patches))
	for _, p := range patches {
		name, ok := opNames[p.Op]
		if !ok {
			return nil, errors.New("E301").WithDetail("unsupported patch op " + p.Op.String())
		}
		f := Frame{
			Op:     name,
			HID:    p.HID,
			Parent: p.ParentID,
			Index:  p.Index,
			Key:    p.Key,
			Value:  p.Value,
		}
		if p.Node != nil && (p.Op == vdom.PatchInsertNode || p.Op == vdom.PatchReplaceNode) {
			html, err := r.RenderToString(p.Node)
			if err != nil {
				return nil, errors.New("E301").Wrap(err)
			}
			f.HTML = html
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// DecodeClientMessage parses a browser message.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E201").Wrap(err)
	}
	if msg.Type != MessageEvent || msg.HID == "" || msg.Event == "" {
		return msg, errors.New("E201").WithDetail("expected an event with hid and event")
	}
	return msg, nil
}
