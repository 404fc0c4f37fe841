package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations_Catalog(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 14)

	seen := make(map[string]bool)
	creates := 0
	for _, op := range ops {
		assert.False(t, seen[op.Name], "duplicate operation %s", op.Name)
		seen[op.Name] = true
		assert.Equal(t, "/pro/"+op.Name, op.Path)
		if op.Create {
			creates++
		}
	}
	assert.Equal(t, 1, creates)
	assert.Equal(t, "3.1", ops[0].Section)
	assert.Equal(t, "3.14", ops[len(ops)-1].Section)
}

func TestLookup(t *testing.T) {
	op, ok := Lookup(OpLastTsData)
	require.True(t, ok)
	assert.Equal(t, "/pro/getLastTsDataPro", op.Path)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestCall_DateParams(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		wantURI string
	}{
		{
			name:    "plant output",
			op:      OpPlantOutput,
			wantURI: "/pro/getPlantOutputPro?apikey=A&date=2026-10-17&isnos=SN1&period=bydays&token=T",
		},
		{
			name:    "energy today",
			op:      OpInverterEToday,
			wantURI: "/pro/getInverterETodayPro?apikey=A&date=2026-10-17&isnos=SN1&token=T",
		},
		{
			name:    "no params",
			op:      OpLastTsData,
			wantURI: "/pro/getLastTsDataPro?apikey=A&isnos=SN1&token=T",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotURI string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotURI = r.URL.RequestURI()
				assert.True(t, verifySignature(r))
				_, _ = w.Write([]byte(`{"status":200,"info":"success","data":{}}`))
			})

			_, err := client.Call(context.Background(), tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURI, gotURI)
		})
	}
}

func TestCall_ExtraParams(t *testing.T) {
	var gotURI string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Call(context.Background(), OpLocation, Param{"psno", "P42"})
	require.NoError(t, err)
	assert.Equal(t, "/pro/getLocationPro?apikey=A&isnos=SN1&psno=P42&token=T", gotURI)
}

func TestCall_UnknownOperation(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", testCreds, 0, discardLogger())
	_, err := client.Call(context.Background(), "getNothing")
	assert.Error(t, err)
}
