package registry

import (
	"encoding/json"
	"testing"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

func TestDecoderRegistry(t *testing.T) {
	reg := NewDecoderRegistry()
	reg.Register(enums.EventSalesNoteShipped, 1, func(payload json.RawMessage) (interface{}, error) {
		var decoded map[string]string
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	})

	input := json.RawMessage(`{"status":"shipped"}`)
	output, err := reg.Decode(enums.EventSalesNoteShipped, 1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outMap, ok := output.(map[string]string); !ok || outMap["status"] != "shipped" {
		t.Fatalf("unexpected output %+v", output)
	}
}
