package repository_test

import (
	"os"
	"strings"
	"testing"
)

// The repositories hand-write their column lists; this keeps them aligned
// with the seeded DDL so a drifting schema fails here instead of at runtime.
var requiredColumns = map[string][]string{
	"campaigns": {
		"id", "name", "target_industry", "target_location", "message_template",
		"status", "accounts_targeted", "responses_received", "conversions",
		"created_at", "updated_at",
	},
	"target_accounts": {
		"id", "username", "full_name", "bio", "follower_count", "following_count",
		"post_count", "is_verified", "is_business", "is_private", "category",
		"location", "last_contacted", "contact_attempts", "status",
		"created_at", "updated_at",
	},
	"conversations": {
		"id", "platform_user_id", "username", "last_message_time",
		"conversation_context", "is_active", "created_at", "updated_at",
	},
	"messages": {
		"id", "conversation_id", "external_id", "sender_username", "content",
		"message_type", "is_from_agent", "created_at",
	},
}

func TestSchemaDeclaresRepositoryColumns(t *testing.T) {
	raw, err := os.ReadFile("../../seed/schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	schema := string(raw)

	for table, columns := range requiredColumns {
		marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
		start := strings.Index(schema, marker)
		if start < 0 {
			t.Errorf("schema does not create table %s", table)
			continue
		}
		body := schema[start+len(marker):]
		if end := strings.Index(body, ");"); end >= 0 {
			body = body[:end]
		}

		for _, column := range columns {
			found := false
			for _, line := range strings.Split(body, "\n") {
				if strings.HasPrefix(strings.TrimSpace(line), column+" ") {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("table %s is missing column %s", table, column)
			}
		}
	}
}
