// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/pesto-garden/pestoctl/internal/attrs"
	"github.com/pesto-garden/pestoctl/internal/config"
	"github.com/pesto-garden/pestoctl/internal/driller"
	"github.com/pesto-garden/pestoctl/internal/dump"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	// We note that the int and bool cases are unlikely to be reached due to JSON
	// parsing behavior.
	switch value := value.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case int:
		return strconv.Itoa(value)
	case float64:
		// Our current use cases have no need for an actual float, so we just return
		// an integer.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit orchestrates projecting, transforming, sorting and rendering
// documents according to command flags and attribute specifications. The
// optional postProcess callback allows commands to apply custom
// transformations to the projected rows before table rendering.
func SliceDiceSpit(docs []gjson.Result,
	attrList attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) {

	// Default to stdout.
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, _ = w.Write(dump.Render(docs))
		fmt.Fprintln(w)
		return
	}

	rows := Project(docs, attrList)

	// THINK Force a time transformation to occur for all attributes, even
	// though many will not be a timestamp. One alternative would be to look at
	// the first row and only add the time transformation to attrs that look
	// like timestamps.
	if cmd.Bool("local") {
		for a := range attrList {
			attrList[a].TransformSpec += "t"
		}
	}

	// Transform each value in each row.
	for _, row := range rows {
		for _, attr := range attrList {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	spec := cmd.String("sort")
	SortDataset(rows, spec)

	switch output {
	case "json":
		jsonOutput, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			log.Errorf("SliceDiceSpit json marshal: %v", err)
		}
		fmt.Fprintln(w, string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(rows)
		if err != nil {
			log.Errorf("SliceDiceSpit yaml marshal: %v", err)
		}
		_, _ = w.Write(yamlOutput)
	default:
		// We apply command-specific post-processing.
		if postProcess != nil {
			if err := postProcess(rows); err != nil {
				log.Errorf("PostProcess: %v", err)
			}
		}

		TableWriter(rows, attrList, cmd, w)
	}
}

// Project shapes documents into output rows. Attr paths resolve through the
// driller so that fragment fan-out behaves exactly as it does for filter
// expressions. When no attr is marked for inclusion the whole document
// becomes the row.
func Project(docs []gjson.Result, attrList attrs.AttrList) []map[string]interface{} {
	if !hasIncludes(attrList) {
		return dump.Maps(docs)
	}

	rows := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		row := make(map[string]interface{})
		// Every attr lands in the row, excluded ones included, so that
		// sorting can use attrs that are not displayed.
		for _, attr := range attrList {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = drillValue(doc, attr.Key)
		}
		rows = append(rows, row)
	}

	return rows
}

// drillValue resolves an attr path against a document. A single match comes
// back bare and multiple matches come back as a slice.
func drillValue(doc gjson.Result, key string) interface{} {
	values := driller.Drill(doc, strings.Split(key, "."))
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0].Value()
	default:
		out := make([]interface{}, 0, len(values))
		for _, value := range values {
			out = append(out, value.Value())
		}
		return out
	}
}

func hasIncludes(attrList attrs.AttrList) bool {
	for _, attr := range attrList {
		if attr.Include {
			return true
		}
	}
	return false
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	attrList attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(resultSet) == 0 {
		return
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present.
	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	empty := cmd.String("empty-value")
	if empty == "" {
		empty = "-"
	}

	// We build the table rows from the result set.
	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrList {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], empty))
		}
		rows = append(rows, row)
	}

	// We render the header if present.
	if cmd.Metadata["header"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["header"].(string)))
	}

	// We configure the table with padding and styles.
	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	// We add column headers if titles are enabled.
	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range attrList {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	// We render the footer if present.
	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
