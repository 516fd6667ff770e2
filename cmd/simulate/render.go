package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func isSupportedFormat(format string) bool {
	switch format {
	case formatJSON, formatYAML, formatTable:
		return true
	}
	return false
}

// render escreve o resultado no formato pedido
func render(w io.Writer, format string, result *domain.SimulationResult) error {
	switch format {
	case formatJSON:
		return renderJSON(w, result)
	case formatYAML:
		return renderYAML(w, result)
	case formatTable:
		return renderTable(w, result)
	default:
		return fmt.Errorf("formato desconhecido: %s", format)
	}
}

func renderJSON(w io.Writer, result *domain.SimulationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.ToResponse())
}

// renderYAML passa pelo JSON para manter os mesmos nomes de campo da API
func renderYAML(w io.Writer, result *domain.SimulationResult) error {
	data, err := json.Marshal(result.ToResponse())
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(doc)
}

func renderTable(w io.Writer, result *domain.SimulationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "date\tnew users\tactive users\trevenue\t")
	for i := 0; i < result.ActiveUsers.Len(); i++ {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t\n",
			result.Range.DateAt(i).Format(time.DateOnly),
			result.NewUsers.Values[i],
			result.ActiveUsers.Values[i],
			result.Revenue.Values[i],
		)
	}

	summary := result.Summarize()
	fmt.Fprintf(tw, "total\t%.2f\t\t%.2f\t\n", summary.TotalNewUsers, summary.TotalRevenue)

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nrun %s: %d dias, pico de %.2f usuários ativos\n",
		result.RunID, summary.Days, summary.PeakActiveUsers)
	return err
}
