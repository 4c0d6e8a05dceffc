package rostrumindexer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	rostrumindexer "github.com/tdex-network/tdex-cauldron/internal/infrastructure/indexer/rostrum"
)

const (
	tokenID = "b79bfc8246b5fc4707e7c7dedcb6619ef1ab91f494a790c20b0f4c422ed95b92"

	subscribeResult = `{
  "type": "cauldron",
  "utxos": [
    {
      "is_withdrawn": false,
      "new_utxo_hash": "h1",
      "new_utxo_n": 0,
      "new_utxo_txid": "3d4dd2c4f1b2c6c1d7b1f9a7e1c2b3d4e5f60718293a4b5c6d7e8f9001122334",
      "pkh": "b5c02afa3440fcbf2b779c3f6e43cdd82634157c",
      "sats": 1250000,
      "spent_utxo_hash": "",
      "token_amount": 9223372036854775807,
      "token_id": "b79bfc8246b5fc4707e7c7dedcb6619ef1ab91f494a790c20b0f4c422ed95b92"
    },
    {
      "is_withdrawn": true,
      "new_utxo_hash": "h2",
      "new_utxo_n": 1,
      "new_utxo_txid": "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899",
      "pkh": "cd5b1ab6f4e3f3e35a715123b8a67c727c98e404",
      "sats": 0,
      "spent_utxo_hash": "h0",
      "token_amount": 0,
      "token_id": "b79bfc8246b5fc4707e7c7dedcb6619ef1ab91f494a790c20b0f4c422ed95b92"
    },
    {
      "is_withdrawn": false,
      "new_utxo_hash": "h3",
      "new_utxo_n": 3,
      "new_utxo_txid": "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
      "pkh": "cd5b1ab6f4e3f3e35a715123b8a67c727c98e404",
      "sats": 5000,
      "spent_utxo_hash": "",
      "token_amount": 10,
      "token_id": "dfd4bfd35bcd3b6b4b3c4b7a09f5fc9a3c9f2f12f66a2ac0d6c0f2b8a2e6f1a0"
    }
  ]
}`
)

type testRequest struct {
	ID     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

func TestGetActivePools(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	svc, err := rostrumindexer.NewService(wsURL(server.URL), 5*time.Second)
	require.NoError(t, err)

	records, err := svc.GetActivePools(context.Background(), tokenID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, "b5c02afa3440fcbf2b779c3f6e43cdd82634157c", record.OwnerPKH)
	require.Equal(t, "1250000", record.Sats.String())
	require.Equal(t, "9223372036854775807", record.Tokens.String())
	require.Equal(t, uint32(0), record.TxPos)
	require.Equal(t,
		"3d4dd2c4f1b2c6c1d7b1f9a7e1c2b3d4e5f60718293a4b5c6d7e8f9001122334",
		record.TxID,
	)

	t.Run("no_pools", func(t *testing.T) {
		records, err := svc.GetActivePools(context.Background(), strings.Repeat("0", 64))
		require.NoError(t, err)
		require.Empty(t, records)
	})
}

func TestFailingNewService(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout time.Duration
	}{
		{"invalid_scheme", "https://rostrum.cauldron.quest", time.Second},
		{"zero_timeout", "wss://rostrum.cauldron.quest:50004", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc, err := rostrumindexer.NewService(tt.url, tt.timeout)
			require.Error(t, err)
			require.Nil(t, svc)
		})
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		defer conn.Close()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			req := testRequest{}
			if err := json.Unmarshal(message, &req); err != nil {
				t.Error(err)
				return
			}

			var result json.RawMessage
			switch req.Method {
			case "cauldron.contract.subscribe":
				if len(req.Params) == 2 && req.Params[1] == tokenID {
					result = json.RawMessage(subscribeResult)
				} else {
					result = json.RawMessage(`{"type":"cauldron","utxos":[]}`)
				}
			default:
				result = json.RawMessage(`true`)
			}
			resp := map[string]interface{}{
				"jsonrpc": "2.0", "id": req.ID, "result": result,
			}
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}
