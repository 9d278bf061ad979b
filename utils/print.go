// Copyright 2025 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/gzip"
	_ "github.com/mattn/go-sqlite3"
)

// Printer is a utility class to output data from the system
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

type Printers struct {
	printers []Printer
}

// Print runs all printers and reports the combined failures.
func (ps *Printers) Print() error {
	var err error
	for _, p := range ps.printers {
		err = errors.CombineErrors(err, p.Print())
	}
	return err
}

func (ps *Printers) Close() error {
	var err error
	for _, p := range ps.printers {
		err = errors.CombineErrors(err, p.Close())
	}
	return err
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes to any io.Writer
// Wrap f, returns a string to be printed
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToTable renders a header and records as a text table
type PrinterToTable struct {
	w     io.Writer
	title string
	f     func() ([]string, [][]string)
}

func (p *PrinterToTable) Print() error {
	_, err := fmt.Fprintln(p.w, p.Render())
	return err
}

// Render returns the table as text.
func (p *PrinterToTable) Render() string {
	header, records := p.f()
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if p.title != "" {
		t.SetTitle(p.title)
		fitTitle(t, p.title, header, records)
	}
	t.AppendHeader(toRow(header))
	for _, record := range records {
		t.AppendRow(toRow(record))
	}
	return t.Render()
}

// fitTitle widens the last column so that the title fits into a single line.
func fitTitle(t table.Writer, title string, header []string, records [][]string) {
	n := len(header)
	if n == 0 {
		return
	}
	widths := make([]int, n)
	for _, row := range append([][]string{header}, records...) {
		for i := 0; i < n && i < len(row); i++ {
			widths[i] = max(widths[i], text.RuneWidthWithoutEscSequences(row[i]))
		}
	}
	// a row spans the cells, one space of padding on each side and a border between them
	room := 3*n - 3
	for _, w := range widths {
		room += w
	}
	if missing := text.RuneWidthWithoutEscSequences(title) - room; missing > 0 {
		t.SetColumnConfigs([]table.ColumnConfig{{Number: n, WidthMin: widths[n-1] + missing}})
	}
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func (p *PrinterToTable) Close() error {
	return nil
}

func NewPrinterToTable(w io.Writer, title string, f func() ([]string, [][]string)) *PrinterToTable {
	return &PrinterToTable{w, title, f}
}

func (ps *Printers) AddPrinterToTable(isDisabled bool, title string, f func() ([]string, [][]string)) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToTable(os.Stdout, title, f))
}

// PrinterToFile writes to a File, gzip compressed if the path ends in .gz
// Wrap f, returns a string to be printed
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "unable to print to file %s", p.filepath)
	}
	defer func() {
		err = errors.CombineErrors(err, file.Close())
	}()

	var w io.Writer = file
	if strings.HasSuffix(p.filepath, ".gz") {
		zw := gzip.NewWriter(file)
		defer func() {
			err = errors.CombineErrors(err, zw.Close())
		}()
		w = zw
	}
	_, err = io.WriteString(w, p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb writes by inserting rows into DB
// Wrap f, returns an array of values to be inserted
type PrinterToDb struct {
	db     *sqlx.DB
	insert string
	f      func() [][]any
}

func (p *PrinterToDb) Print() (err error) {
	// a single transaction for all rows of one print
	tx, err := p.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "unable to begin a transaction")
	}

	stmt, err := tx.Preparex(p.insert)
	if err != nil {
		return errors.CombineErrors(errors.Wrapf(err, "unable to prepare statement %s", p.insert), tx.Rollback())
	}
	defer func() {
		err = errors.CombineErrors(err, stmt.Close())
	}()

	for _, value := range p.f() {
		if _, err = stmt.Exec(value...); err != nil {
			return errors.CombineErrors(errors.Wrap(err, "unable to insert row"), tx.Rollback())
		}
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

func NewPrinterToDb(db *sqlx.DB, insert string, f func() [][]any) *PrinterToDb {
	return &PrinterToDb{db, insert, f}
}

func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	db, err := sqlx.Open("sqlite3", conn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open connection to sqlite3 %s", conn)
	}

	if _, err = db.Exec(create); err != nil {
		return nil, errors.CombineErrors(errors.Wrapf(err, "failed to create table on %s", conn), db.Close())
	}
	// so that insert does not block
	if _, err = db.Exec("PRAGMA synchronous = OFF"); err != nil {
		return nil, errors.CombineErrors(err, db.Close())
	}
	if _, err = db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return nil, errors.CombineErrors(err, db.Close())
	}

	return NewPrinterToDb(db, insert, f), nil
}

func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*Printers, error) {
	if conn == "" {
		return ps, nil
	}
	p, err := NewPrinterToSqlite3(conn, create, insert, f)
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(p), nil
}
