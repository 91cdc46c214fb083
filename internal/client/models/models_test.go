package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ID
	}{
		{"string", `"p1"`, "p1"},
		{"number", `42`, "42"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &id), ErrInvalidID)
}

func TestID_Marshal(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"42", `42`},
		{"-7", `-7`},
		{"p1", `"p1"`},
		{"0042x", `"0042x"`},
		{"", `null`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(b), string(tt.id))
	}

	b, err := json.Marshal(SessionInput{ProjectID: "3", Title: "T", Mode: ModeChat})
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":3,"title":"T","mode":"chat","role_description":""}`, string(b))
}

func TestTime_Unmarshal(t *testing.T) {
	var v struct {
		A Time `json:"a"`
		B Time `json:"b"`
		C Time `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-05-01T10:00:00Z","b":"2024-05-01T10:00:00.123456","c":null}`), &v))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), v.A.Time)
	assert.Equal(t, 123456000, v.B.Nanosecond())
	assert.True(t, v.C.IsZero())

	var bad Time
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestProject_Aliases(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Legacy","user_id":3,"status":"active"}`), &p))
	assert.Equal(t, ID("7"), p.ID)
	assert.Equal(t, "Legacy", p.Title)
	assert.Equal(t, ID("3"), p.OwnerID)
	assert.Equal(t, []string{}, p.TechnologyStack)

	var q Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","title":"X","name":"ignored","technology_stack":["Go"]}`), &q))
	assert.Equal(t, "X", q.Title)
	assert.Equal(t, []string{"Go"}, q.TechnologyStack)
}

func TestProjectStatus_Is(t *testing.T) {
	assert.True(t, ProjectStatus("ACTIVE").Is(ProjectActive))
	assert.False(t, ProjectStatus("planning").Is(ProjectActive))
}

func TestSession_Aliases(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"project_id":2,"name":"Intro","role":"tutor","mode":"teaching","message_count":4,"archived_at":null}`), &s))
	assert.Equal(t, "Intro", s.Title)
	assert.Equal(t, "tutor", s.RoleDescription)
	assert.Equal(t, ID("2"), s.ProjectID)
	assert.Equal(t, 4, s.MessageCount)
	assert.Nil(t, s.ArchivedAt)
}

func TestMessage_TypeAlias(t *testing.T) {
	var m Message
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","type":"assistant","content":"hi"}`), &m))
	assert.Equal(t, RoleAssistant, m.Role)

	var n Message
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m2","role":"user","type":"assistant"}`), &n))
	assert.Equal(t, RoleUser, n.Role)
}

func TestSortByCreated(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	msgs := []Message{
		{ID: "c", CreatedAt: Time{t0.Add(2 * time.Minute)}},
		{ID: "a", CreatedAt: Time{t0}},
		{ID: "b", CreatedAt: Time{t0.Add(time.Minute)}},
	}
	SortByCreated(msgs)
	assert.Equal(t, []ID{"a", "b", "c"}, []ID{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestUser_Unmarshal(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":5,"email":"a@b.c","first_name":"Ada","last_name":"Lovelace"}`), &u))
	assert.Equal(t, ID("5"), u.ID)
	assert.Equal(t, "Ada Lovelace", u.Name)

	var v User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","email":"a@b.c","username":"ada"}`), &v))
	assert.Equal(t, "ada", v.Name)
	assert.Equal(t, "ada", v.DisplayName())

	assert.Equal(t, "a@b.c", User{Email: "a@b.c"}.DisplayName())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js"}, SplitList("React, Node.js"))
	assert.Equal(t, []string{"Go", "SQL"}, SplitList(" Go ,, SQL , "))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestClampTemperature(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.34, 0.3},
		{0.66, 0.7},
		{1, 1},
		{7, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ClampTemperature(tt.in), 1e-9, "in=%v", tt.in)
	}
}

func TestClampMaxTokens(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 100},
		{0, 100},
		{149, 100},
		{151, 200},
		{2000, 2000},
		{4001, 4000},
		{1 << 40, 4000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampMaxTokens(tt.in), "in=%v", tt.in)
	}
}

func TestSettings_Normalize(t *testing.T) {
	got := Settings{Theme: "neon", LLMModel: "gpt", Temperature: 3, MaxTokens: 0}.Normalize()
	assert.Equal(t, Settings{Theme: ThemeLight, LLMModel: ModelSonnet, Temperature: 1, MaxTokens: 2000}, got)

	assert.Equal(t, DefaultSettings(), DefaultSettings().Normalize())
}

func TestParseModel(t *testing.T) {
	m, ok := ParseModel("opus")
	assert.True(t, ok)
	assert.Equal(t, ModelOpus, m)

	m, ok = ParseModel(ModelHaiku)
	assert.True(t, ok)
	assert.Equal(t, ModelHaiku, m)

	_, ok = ParseModel("gpt-4")
	assert.False(t, ok)
}

func TestLookupMode(t *testing.T) {
	o, ok := LookupMode(ModeQuestion)
	require.True(t, ok)
	assert.Equal(t, "Q&A", o.Label)
	assert.Equal(t, ModeChat, Modes[0].Mode)
	assert.Len(t, Modes, 4)
}
