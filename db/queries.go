package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Run queries

//go:embed sql/insert_run.sql
var InsertRunSQL string

//go:embed sql/select_runs.sql
var SelectRunsSQL string

//go:embed sql/select_runs_by_prefix.sql
var SelectRunsByPrefixSQL string

//go:embed sql/delete_runs_before.sql
var DeleteRunsBeforeSQL string

// Run clip queries

//go:embed sql/insert_run_clip.sql
var InsertRunClipSQL string

//go:embed sql/select_run_clips.sql
var SelectRunClipsSQL string
