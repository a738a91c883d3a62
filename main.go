package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"btreedb/btree"
	"btreedb/debug"
	"btreedb/executor"
	"btreedb/pager"
	"btreedb/row"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Must supply a database filename.")
		os.Exit(1)
	}

	table, err := btree.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	exec := executor.New(table)

	reader := bufio.NewReader(os.Stdin)
	for {
		printPrompt()
		line, err := readInput(reader)
		if err != nil {
			exec.Close()
			return
		}
		if len(line) == 0 {
			continue
		}

		if line[0] == '.' {
			switch handleMetaCommand(line) {
			case MetaCommandSuccess:
				runMetaCommand(line, table, exec)
			case MetaCommandUnrecognizedCommand:
				fmt.Printf("Unrecognized command '%s'\n", line)
			}
			continue
		}

		var stmt Statement
		switch prepareStatement(line, &stmt) {
		case PrepareSuccess:
			executeStatement(&stmt, exec)
		case PrepareNegativeID:
			fmt.Println("ID must be positive.")
		case PrepareStringTooLong:
			fmt.Println("String is too long.")
		case PrepareSyntaxError:
			fmt.Println("Syntax error. Could not parse statement.")
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'.\n", line)
		}
	}
}

// runMetaCommand handles the meta-commands handleMetaCommand already
// validated as recognized. ".exit" terminates the process after a clean
// close, matching spec.md §6's requirement that it call close on exit.
func runMetaCommand(line string, table *btree.Table, exec *executor.Executor) {
	switch line {
	case ".exit":
		if err := exec.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing database: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	case ".btree":
		fmt.Println("Tree:")
		if err := debug.PrintTree(os.Stdout, table); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing tree: %v\n", err)
		}
	case ".constants":
		fmt.Println("Constants:")
		debug.PrintConstants(os.Stdout)
	}
}

// executeStatement dispatches a parsed Statement to the executor and
// prints the REPL-visible outcome (spec.md §7: logical errors print a
// one-line message and the session continues).
func executeStatement(stmt *Statement, exec *executor.Executor) {
	var err error
	switch stmt.Type {
	case StatementInsert:
		err = exec.Insert(stmt.Insert)
	case StatementUpdate:
		err = exec.Update(stmt.Update)
	case StatementDelete:
		err = exec.Delete(stmt.Delete)
	case StatementSelect:
		err = exec.Select(func(r row.Row) error {
			fmt.Printf("(%d, %s, %s)\n", r.ID, r.Username, r.Email)
			return nil
		})
	}

	switch {
	case err == nil:
		fmt.Println("Executed.")
	case err == executor.ErrDuplicateKey:
		fmt.Println("Error: Duplicate key.")
	case err == executor.ErrNotFound:
		fmt.Println("Error: Not found.")
	case errors.Is(err, pager.ErrTableFull):
		fmt.Println("Error: Table full.")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printPrompt() {
	fmt.Print("db > ")
}

func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
