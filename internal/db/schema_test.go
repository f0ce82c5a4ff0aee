package db

import (
	"regexp"
	"strings"
	"testing"
)

// tableDDL cuts one CREATE TABLE block out of the schema.
func tableDDL(t *testing.T, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	if start < 0 {
		t.Fatalf("schema has no table %q", table)
	}
	rest := schema[start:]
	end := strings.Index(rest, ");")
	if end < 0 {
		t.Fatalf("unterminated DDL for table %q", table)
	}
	return rest[:end]
}

// Audit rows must outlive the acting user: without SET NULL, every
// registration writes an activity row that would block deleting that user
// forever.
func TestActivityLogsSurviveUserDeletion(t *testing.T) {
	ddl := tableDDL(t, "activity_logs")

	re := regexp.MustCompile(`user_id\s+BIGINT REFERENCES users\(id\) ON DELETE SET NULL`)
	if !re.MatchString(ddl) {
		t.Fatalf("activity_logs.user_id must reference users(id) ON DELETE SET NULL, got:\n%s", ddl)
	}
}

// Comments and ratings are the real dependents: their user FKs must NOT
// cascade or null out, so deleting a user with content fails with a
// foreign-key violation that the API maps to 409.
func TestUserContentBlocksDeletion(t *testing.T) {
	for _, table := range []string{"comments", "ratings"} {
		ddl := tableDDL(t, table)
		re := regexp.MustCompile(`user_id\s+BIGINT NOT NULL REFERENCES users\(id\)\s*,`)
		if !re.MatchString(ddl) {
			t.Errorf("%s.user_id must reference users(id) with no ON DELETE action, got:\n%s", table, ddl)
		}
	}
}

// Deleting a video must take its comments, ratings, and tag links with it.
func TestVideoDependentsCascade(t *testing.T) {
	for _, table := range []string{"comments", "ratings", "video_tags"} {
		ddl := tableDDL(t, table)
		if !strings.Contains(ddl, "REFERENCES videos(id) ON DELETE CASCADE") {
			t.Errorf("%s.video_id must cascade on video deletion, got:\n%s", table, ddl)
		}
	}
}
