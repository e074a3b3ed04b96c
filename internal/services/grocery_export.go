package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const exportWeekLayout = "2006-01-02"

var ErrExportFormatUnknown = errors.New("export format unknown")

// GroceryExport is a ready-to-send grocery list attachment.
type GroceryExport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// BuildGroceryExport renders the grocery list as a text, csv, or json
// attachment. An empty format means text.
func BuildGroceryExport(weekStart time.Time, items []string, format string) (GroceryExport, error) {
	week := weekStart.Format(exportWeekLayout)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		var buffer bytes.Buffer
		for _, item := range items {
			buffer.WriteString(item)
			buffer.WriteByte('\n')
		}
		return GroceryExport{
			Filename:    fmt.Sprintf("plateful-groceries-%s.txt", week),
			ContentType: "text/plain; charset=utf-8",
			Body:        buffer.Bytes(),
		}, nil

	case "csv":
		var buffer bytes.Buffer
		writer := csv.NewWriter(&buffer)
		if err := writer.Write([]string{"Item"}); err != nil {
			return GroceryExport{}, err
		}
		for _, item := range items {
			if err := writer.Write([]string{item}); err != nil {
				return GroceryExport{}, err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return GroceryExport{}, err
		}
		return GroceryExport{
			Filename:    fmt.Sprintf("plateful-groceries-%s.csv", week),
			ContentType: "text/csv",
			Body:        buffer.Bytes(),
		}, nil

	case "json":
		body, err := json.Marshal(items)
		if err != nil {
			return GroceryExport{}, err
		}
		return GroceryExport{
			Filename:    fmt.Sprintf("plateful-groceries-%s.json", week),
			ContentType: "application/json",
			Body:        body,
		}, nil
	}

	return GroceryExport{}, ErrExportFormatUnknown
}
