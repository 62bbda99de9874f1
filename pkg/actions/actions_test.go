package actions

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Action
		typ  Type
		data string
	}{
		{"history", HistoryDelete("https://foo.com"), NotifyHistoryDelete, "https://foo.com"},
		{"bookmark", BookmarkDelete("testBookmark"), NotifyBookmarkDelete, "testBookmark"},
		{"block", BlockURL("https://foo.com"), NotifyBlockURL, "https://foo.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Type != tt.typ {
				t.Errorf("Type = %v, want %v", tt.got.Type, tt.typ)
			}
			if tt.got.Payload() != tt.data {
				t.Errorf("Data = %q, want %q", tt.got.Payload(), tt.data)
			}
		})
	}
}

func TestUserEventEncoding(t *testing.T) {
	pos := 3
	tests := []struct {
		name string
		data UserEventData
		want string
	}{
		{
			name: "full",
			data: UserEventData{Event: EventDelete, Page: "NEW_TAB", Source: "FEATURED", ActionPosition: &pos, ExperimentID: "exp-001"},
			want: `{"type":"NOTIFY_USER_EVENT","data":{"event":"DELETE","page":"NEW_TAB","source":"FEATURED","action_position":3,"experiment_id":"exp-001"}}`,
		},
		{
			name: "bare",
			data: UserEventData{Event: EventBlock},
			want: `{"type":"NOTIFY_USER_EVENT","data":{"event":"BLOCK"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(UserEvent(tt.data))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s\nwant %s", b, tt.want)
			}
		})
	}
}

func TestUnmarshalRestoresPayload(t *testing.T) {
	in := []byte(`[
		{"type":"NOTIFY_BLOCK_URL","data":"https://foo.com"},
		{"type":"NOTIFY_USER_EVENT","data":{"event":"BLOCK","action_position":2}}
	]`)
	var got []Action
	if err := json.Unmarshal(in, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	pos := 2
	want := []Action{
		BlockURL("https://foo.com"),
		UserEvent(UserEventData{Event: EventBlock, ActionPosition: &pos}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	for _, in := range []string{
		`{"type":"NOTIFY_NOPE","data":"x"}`,
		`{"type":"NOTIFY_BLOCK_URL","data":{"x":1}}`,
		`{"type":"NOTIFY_USER_EVENT","data":"x"}`,
		`not json`,
	} {
		var a Action
		if err := json.Unmarshal([]byte(in), &a); err == nil {
			t.Errorf("Unmarshal(%s) should fail", in)
		}
	}
}

func TestPosition(t *testing.T) {
	if (UserEventData{}).Position() != -1 {
		t.Error("unset position should be -1")
	}
	p := 0
	if (UserEventData{ActionPosition: &p}).Position() != 0 {
		t.Error("position 0 should be preserved")
	}
	if _, ok := BlockURL("x").UserEventData(); ok {
		t.Error("block action has no user event data")
	}
}

func TestTypeValid(t *testing.T) {
	if !NotifyUserEvent.Valid() || Type("X").Valid() {
		t.Error("Valid misreports")
	}
}
