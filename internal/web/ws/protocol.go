package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/stonegame/internal/model"
)

// ErrMalformed is returned for frames that are not a valid intent envelope
var ErrMalformed = errors.New("malformed message")

// envelope is the frame shape in both directions
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outboundEnvelope struct {
	Type    model.EventType `json:"type"`
	Payload any             `json:"payload"`
}

type namePayload struct {
	Name string `json:"name"`
}

type roomPayload struct {
	RoomID model.RoomID `json:"roomId"`
}

type createPayload struct {
	HostName string `json:"hostName"`
	Title    string `json:"title"`
}

type joinPayload struct {
	RoomID     model.RoomID `json:"roomId"`
	PlayerName string       `json:"playerName"`
}

type movePayload struct {
	RoomID model.RoomID `json:"roomId"`
	Row    *int         `json:"r"`
	Col    *int         `json:"c"`
}

// EncodeEvent renders an event as a {"type","payload"} frame
func EncodeEvent(event model.Event) ([]byte, error) {
	payload := event.Payload
	if payload == nil {
		payload = struct{}{}
	}
	return json.Marshal(outboundEnvelope{Type: event.Type, Payload: payload})
}

// DecodeIntent parses a client frame. Payloads that carry a single name or room id
// may be sent as a bare JSON string.
func DecodeIntent(conn model.ConnID, data []byte) (model.Intent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.Intent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	intent := model.Intent{Type: model.IntentType(env.Type), Conn: conn}

	switch intent.Type {
	case model.IntentListRooms:
		return intent, nil

	case model.IntentOnline:
		var p namePayload
		if err := decodeStringOr(env.Payload, &p.Name, &p); err != nil {
			return model.Intent{}, err
		}
		intent.Name = p.Name

	case model.IntentCreateRoom:
		var p createPayload
		if err := decodeStringOr(env.Payload, &p.HostName, &p); err != nil {
			return model.Intent{}, err
		}
		intent.Name = p.HostName
		intent.Title = p.Title

	case model.IntentJoinRoom:
		var p joinPayload
		if err := decodeObject(env.Payload, &p); err != nil {
			return model.Intent{}, err
		}
		if p.RoomID == "" {
			return model.Intent{}, fmt.Errorf("%w: roomId is required", ErrMalformed)
		}
		intent.RoomID = p.RoomID
		intent.Name = p.PlayerName

	case model.IntentReady, model.IntentStart, model.IntentPass, model.IntentSurrender:
		var p roomPayload
		if err := decodeStringOr(env.Payload, (*string)(&p.RoomID), &p); err != nil {
			return model.Intent{}, err
		}
		if p.RoomID == "" {
			return model.Intent{}, fmt.Errorf("%w: roomId is required", ErrMalformed)
		}
		intent.RoomID = p.RoomID

	case model.IntentLeave:
		// the room id is optional
		var p roomPayload
		if len(env.Payload) > 0 {
			if err := decodeStringOr(env.Payload, (*string)(&p.RoomID), &p); err != nil {
				return model.Intent{}, err
			}
		}
		intent.RoomID = p.RoomID

	case model.IntentMove:
		var p movePayload
		if err := decodeObject(env.Payload, &p); err != nil {
			return model.Intent{}, err
		}
		if p.RoomID == "" || p.Row == nil || p.Col == nil {
			return model.Intent{}, fmt.Errorf("%w: roomId, r and c are required", ErrMalformed)
		}
		intent.RoomID = p.RoomID
		intent.Pos = model.Position{Row: *p.Row, Col: *p.Col}

	default:
		return model.Intent{}, fmt.Errorf("%w: %q", model.ErrUnknownIntent, env.Type)
	}

	return intent, nil
}

// decodeStringOr accepts either a JSON string or an object
func decodeStringOr(raw json.RawMessage, str *string, obj any) error {
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, str); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil
	}
	return decodeObject(raw, obj)
}

func decodeObject(raw json.RawMessage, obj any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrMalformed)
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
