package deletemenu

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/experiments"
)

func labels(l Layout) []string {
	return []string{l.Options[0].Label, l.Options[1].Label}
}

func TestRenderMenu(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		exp   experiments.Snapshot
		want  []string
	}{
		{
			name:  "history natural order",
			props: Props{URL: "https://foo.com"},
			want:  []string{LabelRemoveFromHistory, LabelNeverShow},
		},
		{
			name:  "bookmark natural order",
			props: Props{URL: "https://foo.com", BookmarkGUID: "g"},
			want:  []string{LabelRemoveFromBookmarks, LabelNeverShow},
		},
		{
			name:  "reversed",
			props: Props{URL: "https://foo.com"},
			exp:   experiments.Snapshot{ID: "exp-001", ReverseMenuOptions: true},
			want:  []string{LabelNeverShow, LabelRemoveFromHistory},
		},
		{
			name:  "experiment without reversal",
			props: Props{URL: "https://foo.com", BookmarkGUID: "g"},
			exp:   experiments.Snapshot{ID: "exp-002"},
			want:  []string{LabelRemoveFromBookmarks, LabelNeverShow},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderMenu(tt.props, tt.exp)
			if diff := cmp.Diff(tt.want, labels(got)); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderMenuVisibility(t *testing.T) {
	if RenderMenu(Props{}, experiments.Snapshot{}).Visible {
		t.Error("zero props should be hidden")
	}
	if !RenderMenu(Props{Visible: true}, experiments.Snapshot{}).Visible {
		t.Error("Visible should carry through")
	}
}

func TestOptionIdentitySurvivesReversal(t *testing.T) {
	p := Props{URL: "https://foo.com", BookmarkGUID: "g"}
	natural := RenderMenu(p, experiments.Snapshot{})
	reversed := RenderMenu(p, experiments.Snapshot{ReverseMenuOptions: true})

	for _, kind := range []Kind{KindDelete, KindBlock} {
		a, ok1 := natural.Option(kind)
		b, ok2 := reversed.Option(kind)
		if !ok1 || !ok2 {
			t.Fatalf("option %s missing", kind)
		}
		if a != b {
			t.Errorf("option %s changed under reversal: %+v vs %+v", kind, a, b)
		}
	}
	if _, ok := natural.Option("other"); ok {
		t.Error("unknown kind should not be found")
	}
}

func TestBuildActions(t *testing.T) {
	pos := 3
	tests := []struct {
		name  string
		props Props
		exp   experiments.Snapshot
		kind  Kind
		want  []actions.Action
	}{
		{
			name:  "history delete",
			props: Props{URL: "https://foo.com"},
			kind:  KindDelete,
			want: []actions.Action{
				actions.HistoryDelete("https://foo.com"),
				actions.UserEvent(actions.UserEventData{Event: actions.EventDelete}),
			},
		},
		{
			name:  "bookmark delete with context",
			props: Props{URL: "https://foo.com", BookmarkGUID: "testBookmark", Page: "NEW_TAB", Source: "FEATURED", Index: &pos},
			kind:  KindDelete,
			want: []actions.Action{
				actions.BookmarkDelete("testBookmark"),
				actions.UserEvent(actions.UserEventData{
					Event: actions.EventBookmarkDelete, Page: "NEW_TAB", Source: "FEATURED", ActionPosition: &pos,
				}),
			},
		},
		{
			name:  "block with experiment",
			props: Props{URL: "https://foo.com", BookmarkGUID: "testBookmark"},
			exp:   experiments.Snapshot{ID: "exp-001", ReverseMenuOptions: true},
			kind:  KindBlock,
			want: []actions.Action{
				actions.BlockURL("https://foo.com"),
				actions.UserEvent(actions.UserEventData{Event: actions.EventBlock, ExperimentID: "exp-001"}),
			},
		},
		{
			name:  "unknown kind",
			props: Props{URL: "https://foo.com"},
			kind:  "pin",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildActions(tt.props, tt.exp, tt.kind)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("actions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildActionsCopiesIndex(t *testing.T) {
	pos := 1
	acts := BuildActions(Props{URL: "x", Index: &pos}, experiments.Snapshot{}, KindBlock)
	pos = 7

	data, _ := acts[1].UserEventData()
	if data.Position() != 1 {
		t.Errorf("action_position = %d, want 1", data.Position())
	}
}
