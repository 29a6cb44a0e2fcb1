package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/realty/internal/domain"
)

type fakeLookup struct {
	propertyCalls int
	suburbCalls   int
}

func (f *fakeLookup) FindProperty(fragment string) (*domain.PropertyRecord, error) {
	f.propertyCalls++
	if fragment == "85 Turner St" {
		price := 1480000.0
		return &domain.PropertyRecord{Address: "85 Turner St", Suburb: "Abbotsford", Rooms: 2, Type: domain.PropertyTypeHouse, Price: &price}, nil
	}
	return nil, domain.NotFoundError{Kind: "property", Query: fragment}
}

func (f *fakeLookup) SuburbTrends(suburb string) (*domain.SuburbSummary, error) {
	f.suburbCalls++
	if suburb == "boom" {
		panic("lookup exploded")
	}
	median := 1200000.0
	return &domain.SuburbSummary{Suburb: "Abbotsford", PropertyCount: 1250, MedianPrice: &median}, nil
}

func call(name, args string) domain.ToolCall {
	return domain.ToolCall{ID: "call_1", Name: name, Arguments: json.RawMessage(args)}
}

func TestSpecs(t *testing.T) {
	registry, err := NewRealtyRegistry(&fakeLookup{})
	require.NoError(t, err)

	specs := registry.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, FindPropertyTool, specs[0].Name)
	assert.Equal(t, SuburbTrendsTool, specs[1].Name)

	params := specs[0].Parameters
	assert.Equal(t, "object", params.Type)
	assert.Equal(t, []string{"address"}, params.Required)
	require.Contains(t, params.Properties, "address")
	assert.Equal(t, "string", params.Properties["address"].Type)
	assert.NotEmpty(t, params.Properties["address"].Description)

	tool, ok := registry.Get(SuburbTrendsTool)
	require.True(t, ok)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(tool.Schema, &schema))
	assert.NotContains(t, schema, "$schema")
	assert.Equal(t, false, schema["additionalProperties"])
}

func TestRegisterDuplicate(t *testing.T) {
	registry, err := NewRealtyRegistry(&fakeLookup{})
	require.NoError(t, err)
	dup, ok := registry.Get(FindPropertyTool)
	require.True(t, ok)
	assert.Error(t, registry.Register(dup))
}

func TestDispatchOK(t *testing.T) {
	lookup := &fakeLookup{}
	registry, err := NewRealtyRegistry(lookup)
	require.NoError(t, err)

	res, err := registry.Dispatch(context.Background(), call(FindPropertyTool, `{"address":"85 Turner St"}`))
	require.NoError(t, err)
	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "call_1", res.CallID)
	assert.Equal(t, "85 Turner St, Abbotsford", res.Summary)
	assert.False(t, res.IsError())

	var body struct {
		Status string                `json:"status"`
		Result domain.PropertyRecord `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "Abbotsford", body.Result.Suburb)
	require.NotNil(t, body.Result.Price)
	assert.Equal(t, 1480000.0, *body.Result.Price)
	assert.Equal(t, 1, lookup.propertyCalls)
}

func TestDispatchNotFound(t *testing.T) {
	registry, err := NewRealtyRegistry(&fakeLookup{})
	require.NoError(t, err)

	res, err := registry.Dispatch(context.Background(), call(FindPropertyTool, `{"address":"1 Nowhere Rd"}`))
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.False(t, res.IsError())
	assert.JSONEq(t, `{"status":"not_found","message":"no property matching \"1 Nowhere Rd\""}`, res.Content)
}

func TestDispatchInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		call domain.ToolCall
	}{
		{name: "missing required argument", call: call(SuburbTrendsTool, `{}`)},
		{name: "no arguments at all", call: call(SuburbTrendsTool, ``)},
		{name: "wrong type", call: call(SuburbTrendsTool, `{"suburb":42}`)},
		{name: "empty string", call: call(SuburbTrendsTool, `{"suburb":""}`)},
		{name: "unexpected argument", call: call(SuburbTrendsTool, `{"suburb":"Abbotsford","year":2016}`)},
		{name: "malformed json", call: call(SuburbTrendsTool, `{"suburb":`)},
		{name: "unknown tool", call: call("delete_everything", `{}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{}
			registry, err := NewRealtyRegistry(lookup)
			require.NoError(t, err)

			_, err = registry.Dispatch(context.Background(), tt.call)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidArgumentsError(err))
			assert.Zero(t, lookup.suburbCalls)
		})
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	registry, err := NewRealtyRegistry(&fakeLookup{})
	require.NoError(t, err)

	res, err := registry.Dispatch(context.Background(), call(SuburbTrendsTool, `{"suburb":"boom"}`))
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	assert.True(t, res.IsError())
	assert.Contains(t, res.Content, "lookup exploded")
}

func TestInvalidArgumentsResult(t *testing.T) {
	c := call(SuburbTrendsTool, `{}`)
	res := InvalidArgumentsResult(c, domain.InvalidArgumentsError{Tool: SuburbTrendsTool, Problems: []string{"suburb is required"}})
	assert.Equal(t, StatusInvalidArguments, res.Status)
	tr := res.ToolResult()
	assert.True(t, tr.IsError)
	assert.Equal(t, "call_1", tr.CallID)
	assert.Contains(t, tr.Content, "suburb is required")
}
