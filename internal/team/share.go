package team

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/meur/cobbledex/internal/dex"
)

// ErrInvalidCode is returned for share codes that do not decode to a team.
var ErrInvalidCode = errors.New("invalid team code")

// EncodeShareCode serializes a team's slot identities (empty slots as null)
// into a URL-safe share string: base64 over a JSON array.
func EncodeShareCode(slots []*dex.TeamSlot) string {
	ids := make([]*string, len(slots))
	for i, s := range slots {
		if s != nil {
			id := s.Identity
			ids[i] = &id
		}
	}
	data, _ := json.Marshal(ids)
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeShareCode resolves a share string back into slots against the
// loaded dataset. Unknown identities are dropped to empty slots rather than
// erroring; a payload that is not base64 JSON at all yields ErrInvalidCode.
func DecodeShareCode(code string, records map[string]*dex.Record) ([]*dex.TeamSlot, error) {
	data, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		// Codes minted with the standard alphabet still resolve.
		data, err = base64.StdEncoding.DecodeString(code)
		if err != nil {
			return nil, ErrInvalidCode
		}
	}
	var ids []*string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, ErrInvalidCode
	}
	if len(ids) > MaxSize {
		ids = ids[:MaxSize]
	}
	slots := make([]*dex.TeamSlot, len(ids))
	for i, id := range ids {
		if id == nil {
			continue
		}
		if rec, ok := records[*id]; ok {
			slots[i] = rec.Slot()
		}
	}
	return slots, nil
}
