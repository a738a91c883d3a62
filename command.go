package main

import (
	"strconv"
	"strings"

	"btreedb/executor"
	"btreedb/row"
)

// MetaCommandResult is the result of a line beginning with '.'.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

// PrepareResult is the result of parsing a non-meta line into a Statement,
// per spec.md §7's PrepareError taxonomy.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareNegativeID
	PrepareStringTooLong
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

// handleMetaCommand recognizes every '.'-prefixed line this REPL supports.
// ".exit" is handled by the caller, since it needs the open table to close.
func handleMetaCommand(line string) MetaCommandResult {
	switch strings.TrimSpace(line) {
	case ".exit", ".btree", ".constants":
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}

// prepareStatement tokenizes one line into a Statement. Grammar:
//
//	insert <id> <username> <email>
//	update <username> <email> where id=<id>
//	delete where id=<id>
//	select
func prepareStatement(line string, stmt *Statement) PrepareResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return PrepareUnrecognizedStatement
	}

	switch fields[0] {
	case "insert":
		return prepareInsert(fields, stmt)
	case "update":
		return prepareUpdate(fields, stmt)
	case "delete":
		return prepareDelete(fields, stmt)
	case "select":
		stmt.Type = StatementSelect
		return PrepareSuccess
	default:
		return PrepareUnrecognizedStatement
	}
}

func prepareInsert(fields []string, stmt *Statement) PrepareResult {
	if len(fields) != 4 {
		return PrepareSyntaxError
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	username, email := fields[2], fields[3]
	if len(username) > row.UsernameSize || len(email) > row.EmailSize {
		return PrepareStringTooLong
	}
	stmt.Type = StatementInsert
	stmt.Insert = executor.Insert{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}

// prepareUpdate parses "update <username> <email> where id=<id>".
func prepareUpdate(fields []string, stmt *Statement) PrepareResult {
	if len(fields) != 5 {
		return PrepareSyntaxError
	}
	username, email, whereKw, idTok := fields[1], fields[2], fields[3], fields[4]
	if whereKw != "where" {
		return PrepareSyntaxError
	}
	id, ok := parseIDClause(idTok)
	if !ok {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	if len(username) > row.UsernameSize || len(email) > row.EmailSize {
		return PrepareStringTooLong
	}
	stmt.Type = StatementUpdate
	stmt.Update = executor.Update{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}

// prepareDelete parses "delete where id=<id>".
func prepareDelete(fields []string, stmt *Statement) PrepareResult {
	if len(fields) != 3 {
		return PrepareSyntaxError
	}
	whereKw, idTok := fields[1], fields[2]
	if whereKw != "where" {
		return PrepareSyntaxError
	}
	id, ok := parseIDClause(idTok)
	if !ok {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	stmt.Type = StatementDelete
	stmt.Delete = executor.Delete{ID: uint32(id)}
	return PrepareSuccess
}

// parseIDClause splits "id=<n>" into its integer value.
func parseIDClause(tok string) (int, bool) {
	key, value, found := strings.Cut(tok, "=")
	if !found || key != "id" {
		return 0, false
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return id, true
}
