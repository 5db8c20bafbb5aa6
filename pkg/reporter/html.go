package reporter

import (
	"fmt"
	"html/template"
	"io"

	"github.com/costpilot/cost-copilot/pkg/models"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Cluster Cost Report - {{.ClusterName}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #326ce5 0%, #1a4d8f 100%);
            color: white;
            padding: 40px;
        }
        .header h1 {
            font-size: 2.2em;
            margin-bottom: 10px;
        }
        .header .meta {
            opacity: 0.95;
        }
        .summary {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(240px, 1fr));
            gap: 20px;
            padding: 30px 40px;
            background: #f8f9fa;
        }
        .summary-card {
            background: white;
            padding: 25px;
            border-radius: 10px;
            border: 2px solid #e8eaed;
        }
        .summary-card h3 {
            color: #5f6368;
            font-size: 0.8em;
            text-transform: uppercase;
            letter-spacing: 1px;
            margin-bottom: 10px;
        }
        .summary-card .value {
            font-size: 2.4em;
            font-weight: 700;
            color: #202124;
        }
        .summary-card.total {
            border-left: 6px solid #326ce5;
        }
        .summary-card.total .value {
            color: #326ce5;
        }
        .summary-card.savings {
            border-left: 6px solid #34a853;
        }
        .summary-card.savings .value {
            color: #34a853;
        }
        .section {
            padding: 30px 40px;
        }
        .section h2 {
            margin-bottom: 20px;
            color: #202124;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        th, td {
            text-align: left;
            padding: 12px 14px;
            border-bottom: 1px solid #e8eaed;
        }
        th {
            background: #f8f9fa;
            color: #5f6368;
            text-transform: uppercase;
            font-size: 0.75em;
            letter-spacing: 1px;
        }
        td.money {
            font-variant-numeric: tabular-nums;
        }
        .tier-badge {
            padding: 4px 10px;
            border-radius: 6px;
            font-size: 0.75em;
            font-weight: 700;
            text-transform: uppercase;
            background: #e6f4ea;
            color: #1e8e3e;
            display: inline-block;
        }
        .insight {
            border-left: 4px solid #fbbc04;
            background: #fef7e0;
            padding: 15px 20px;
            border-radius: 6px;
            margin-bottom: 12px;
        }
        .insight strong {
            display: block;
            margin-bottom: 4px;
        }
        .footer {
            background: #202124;
            color: #9aa0a6;
            padding: 30px 40px;
            text-align: center;
        }
        .footer strong {
            color: #fff;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Cluster Cost Report</h1>
            <div class="meta">
                <p><strong>Cluster:</strong> {{.ClusterName}} <span class="tier-badge">{{.Tier}}</span>{{if .Region}} | <strong>Region:</strong> {{.Region}}{{end}}</p>
                <p><strong>Generated:</strong> {{.GeneratedAt.Format "January 2, 2006 15:04:05 MST"}}</p>
            </div>
        </div>

        <div class="summary">
            <div class="summary-card total">
                <h3>Monthly Total</h3>
                <div class="value">${{money .Summary.TotalWithFees}}</div>
            </div>
            <div class="summary-card">
                <h3>Annual Projection</h3>
                <div class="value">${{money .Summary.AnnualProjection}}</div>
            </div>
            <div class="summary-card">
                <h3>Namespaces</h3>
                <div class="value">{{.Summary.NamespaceCount}}</div>
            </div>
            {{if gt .Summary.PotentialSavings 0.0}}
            <div class="summary-card savings">
                <h3>Potential Savings</h3>
                <div class="value">${{money .Summary.PotentialSavings}}</div>
            </div>
            {{end}}
        </div>

        <div class="section">
            <h2>Monthly Bill</h2>
            <table>
                <tr><th>Line Item</th><th>{{.Currency}}</th></tr>
                <tr><td>Compute</td><td class="money">{{money .Bill.Breakdown.ComputeCost}}</td></tr>
                <tr><td>Memory</td><td class="money">{{money .Bill.Breakdown.MemoryCost}}</td></tr>
                <tr><td>Storage</td><td class="money">{{money .Bill.Breakdown.StorageCost}}</td></tr>
                {{if gt .Bill.ManagementFee 0.0}}
                <tr><td>Management fee</td><td class="money">{{money .Bill.ManagementFee}}</td></tr>
                {{end}}
                <tr><td><strong>Total</strong></td><td class="money"><strong>{{money .Bill.TotalWithFees}}</strong></td></tr>
            </table>
        </div>

        {{if .Comparison}}
        <div class="section">
            <h2>Namespaces by Cost</h2>
            <table>
                <thead>
                    <tr>
                        <th>#</th>
                        <th>Namespace</th>
                        <th>Compute</th>
                        <th>Memory</th>
                        <th>Storage</th>
                        <th>Total</th>
                        <th>Share</th>
                    </tr>
                </thead>
                <tbody>
                    {{$report := .Report}}
                    {{range $i, $entry := .Comparison}}
                    <tr>
                        <td>{{inc $i}}</td>
                        <td><strong>{{$entry.Namespace}}</strong></td>
                        <td class="money">{{money $entry.Breakdown.ComputeCost}}</td>
                        <td class="money">{{money $entry.Breakdown.MemoryCost}}</td>
                        <td class="money">{{money $entry.Breakdown.StorageCost}}</td>
                        <td class="money">{{money $entry.Breakdown.TotalMonthlyCost}}</td>
                        <td>{{printf "%.1f" (share $report $entry)}}%</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        {{if .Insights}}
        <div class="section">
            <h2>Insights</h2>
            {{range .Insights}}
            <div class="insight">
                <strong>{{.Title}}</strong>
                {{.Detail}}{{if gt .EstimatedMonthlySavings 0.0}} (est. ${{money .EstimatedMonthlySavings}}/month){{end}}
            </div>
            {{end}}
        </div>
        {{end}}

        {{if and .Waste .Waste.Lines}}
        <div class="section">
            <h2>Orphaned Resources</h2>
            <table>
                <thead>
                    <tr><th>Resource</th><th>Name</th><th>Min/Month</th><th>Max/Month</th><th>Note</th></tr>
                </thead>
                <tbody>
                    {{range .Waste.Lines}}
                    <tr>
                        <td>{{.Resource}}</td>
                        <td>{{.Name}}</td>
                        <td class="money">{{money .MinMonthly}}</td>
                        <td class="money">{{money .MaxMonthly}}</td>
                        <td>{{.Note}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        <div class="footer">
            <p>Generated by <strong>cost-copilot</strong></p>
        </div>
    </div>
</body>
</html>
`

type htmlData struct {
	*Report
	Summary Summary
}

// GenerateHTML creates an HTML report.
func GenerateHTML(report *Report, writer io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", models.Round2(v)) },
		"inc":   func(i int) int { return i + 1 },
		"share": func(r *Report, entry models.NamespaceCost) float64 { return r.Share(entry) },
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	data := htmlData{Report: report, Summary: report.Summary()}
	if err := tmpl.Execute(writer, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}
