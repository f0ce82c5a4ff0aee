package repository

import (
	"strings"
	"testing"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

func int64p(v int64) *int64 { return &v }

func TestQualifyColumns(t *testing.T) {
	got := qualifyColumns(videoColumns, "v")
	want := "v.id, v.title, v.youtube_id, v.description, v.category_id, v.subcategory_id, " +
		"v.duration, v.views, v.thumbnail_url, v.published_at, v.created_at, v.updated_at"
	if got != want {
		t.Errorf("qualifyColumns(videoColumns, \"v\")\n got: %s\nwant: %s", got, want)
	}

	// _id columns must keep their names intact: "id" is a suffix of
	// youtube_id, category_id, and subcategory_id.
	for _, bogus := range []string{"youtube_v.id", "category_v.id", "subcategory_v.id"} {
		if strings.Contains(got, bogus) {
			t.Errorf("qualified column list contains mangled column %q", bogus)
		}
	}
}

func TestFilterClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    model.VideoFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty filter",
			filter:    model.VideoFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "category only",
			filter:    model.VideoFilter{CategoryID: int64p(3)},
			wantWhere: " WHERE v.category_id = $1",
			wantArgs:  []any{int64(3)},
		},
		{
			name:      "tag only",
			filter:    model.VideoFilter{TagID: int64p(9)},
			wantWhere: " WHERE EXISTS (SELECT 1 FROM video_tags vt WHERE vt.video_id = v.id AND vt.tag_id = $1)",
			wantArgs:  []any{int64(9)},
		},
		{
			name:      "search only",
			filter:    model.VideoFilter{Search: "gophers"},
			wantWhere: " WHERE v.title ILIKE '%' || $1 || '%'",
			wantArgs:  []any{"gophers"},
		},
		{
			name: "all filters number placeholders in order",
			filter: model.VideoFilter{
				CategoryID:    int64p(3),
				SubcategoryID: int64p(5),
				TagID:         int64p(9),
				Search:        "go",
			},
			wantWhere: " WHERE v.category_id = $1 AND v.subcategory_id = $2" +
				" AND EXISTS (SELECT 1 FROM video_tags vt WHERE vt.video_id = v.id AND vt.tag_id = $3)" +
				" AND v.title ILIKE '%' || $4 || '%'",
			wantArgs: []any{int64(3), int64(5), int64(9), "go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := filterClause(tt.filter)
			if where != tt.wantWhere {
				t.Errorf("where\n got: %q\nwant: %q", where, tt.wantWhere)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}
