package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mycarta/wind-calculator-v3/internal/windcalc"
)

// ComparisonRow summarizes one rotor diameter for the same site inputs.
type ComparisonRow struct {
	RotorDiameter windcalc.RotorDiameter `json:"rotor_diameter"`
	HubHeightM    float64                `json:"hub_height_m"`
	WindSpeed     float64                `json:"wind_speed"`
	PowerDensity  float64                `json:"power_density"`
	Power         string                 `json:"power"`
	Turbines      int                    `json:"turbines"`
	SitePower     string                 `json:"site_power"`
	SiteEnergy    string                 `json:"site_energy_derated"`
	Result        windcalc.Result        `json:"result"`
}

// BuildComparison formats results, one row each, in input order.
func BuildComparison(results []windcalc.Result, powerUnit windcalc.PowerUnit,
	energyUnit windcalc.EnergyUnit) ([]ComparisonRow, error) {
	rows := make([]ComparisonRow, 0, len(results))
	for _, r := range results {
		power, err := windcalc.FormatPower(r.PowerKW, powerUnit)
		if err != nil {
			return nil, err
		}
		sitePower, err := windcalc.FormatPower(r.SitePowerKW, powerUnit)
		if err != nil {
			return nil, err
		}
		siteEnergy, err := windcalc.FormatEnergy(r.SiteEnergyDerated, energyUnit)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ComparisonRow{
			RotorDiameter: r.RotorDiameter,
			HubHeightM:    r.HubHeightM,
			WindSpeed:     r.WindSpeed,
			PowerDensity:  r.PowerDensity,
			Power:         power,
			Turbines:      r.TurbineCount,
			SitePower:     sitePower,
			SiteEnergy:    siteEnergy,
			Result:        r,
		})
	}
	return rows, nil
}

// RenderComparison writes rows in the given format.
func RenderComparison(w io.Writer, format string, rows []ComparisonRow) error {
	switch format {
	case FormatTable:
		return renderComparisonTable(w, rows)
	case FormatJSON:
		if rows == nil {
			rows = []ComparisonRow{}
		}
		return writeJSON(w, rows)
	case FormatNDJSON:
		for _, row := range rows {
			if err := writeNDJSONRecord(w, row); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func renderComparisonTable(w io.Writer, rows []ComparisonRow) error {
	if err := writeBanner(w); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintln(tw, "DIAMETER\tHUB\tWIND\tPOWER DENSITY\tMEAN POWER\tTURBINES\tSITE POWER\tSITE ENERGY (DERATED)"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--------\t---\t----\t-------------\t----------\t--------\t----------\t---------------------"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s m\t%.2f m/s\t%s W/m²\t%s\t%s\t%s\t%s\n",
			row.RotorDiameter,
			windcalc.FormatFloat(row.HubHeightM, 0),
			row.WindSpeed,
			windcalc.FormatFloat(row.PowerDensity, 0),
			row.Power,
			windcalc.FormatNumber(int64(row.Turbines)),
			row.SitePower,
			row.SiteEnergy,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

// LookupRow is one row of the hub-height lookup tables.
type LookupRow struct {
	RotorDiameter windcalc.RotorDiameter `json:"rotor_diameter"`
	HubHeightM    float64                `json:"hub_height_m"`
	AirDensity    float64                `json:"air_density"`
	WindSpeed     float64                `json:"wind_speed"`
}

// LookupRows returns the lookup tables in ascending diameter order.
func LookupRows() ([]LookupRow, error) {
	ds := windcalc.Diameters()
	rows := make([]LookupRow, 0, len(ds))
	for _, d := range ds {
		atm, err := windcalc.Lookup(d)
		if err != nil {
			return nil, err
		}
		rows = append(rows, LookupRow{
			RotorDiameter: d,
			HubHeightM:    d.HubHeight(),
			AirDensity:    atm.AirDensity,
			WindSpeed:     atm.WindSpeed,
		})
	}
	return rows, nil
}

// RenderLookupTables writes the lookup tables in the given format.
func RenderLookupTables(w io.Writer, format string, rows []LookupRow) error {
	switch format {
	case FormatTable:
		if _, err := fmt.Fprintf(w, "Source: von Krauland et al. (2023), Northeast Atlantic US\n\n"); err != nil {
			return fmt.Errorf("writing source: %w", err)
		}
		tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		if _, err := fmt.Fprintln(tw, "DIAMETER\tHUB HEIGHT\tAIR DENSITY (kg/m³)\tWIND SPEED (m/s)"); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(tw, "%s\t%s m\t%.3f\t%.2f\n",
				row.RotorDiameter, windcalc.FormatFloat(row.HubHeightM, 0),
				row.AirDensity, row.WindSpeed); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		return tw.Flush()
	case FormatJSON:
		if rows == nil {
			rows = []LookupRow{}
		}
		return writeJSON(w, rows)
	case FormatNDJSON:
		for _, row := range rows {
			if err := writeNDJSONRecord(w, row); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
