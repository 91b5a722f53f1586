package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	kvTable     = "kv_entries"
	eventsTable = "llm_request_events"
)

var (
	kvColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	kvEntriesTable = &schema.Table{
		Name:       kvTable,
		Columns:    kvColumns,
		PrimaryKey: []*schema.Column{kvColumns[0]},
	}

	eventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "request_id", Type: field.TypeString, Default: ""},
		{Name: "operation", Type: field.TypeString, Default: ""},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "status_code", Type: field.TypeInt, Default: 0},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       eventsTable,
		Columns:    eventColumns,
		PrimaryKey: []*schema.Column{eventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{eventColumns[7]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{eventColumns[6]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{eventColumns[11]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{eventColumns[2]}},
		},
	}

	tables = []*schema.Table{kvEntriesTable, llmRequestEventsTable}
)

// migrate creates or updates every table the store owns.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
