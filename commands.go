package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shiftlog/internal"
	"shiftlog/internal/calc"
	"shiftlog/internal/format"
	"shiftlog/internal/record"
	"shiftlog/internal/sheet"
	"shiftlog/internal/tracker"
)

const appVersion = "0.3.0"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "shiftlog",
		Short:         "Track daily work hours, overtime and pay",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			m := internal.NewModel(a.tracker, a.cfg.Export.Path)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running program: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.shiftlog/config.yaml)")

	root.AddCommand(
		newDayCmd(),
		newSaveCmd(&configPath),
		newListCmd(&configPath),
		newPayCmd(&configPath),
		newSettingsCmd(&configPath),
		newExportCmd(&configPath),
		newImportCmd(&configPath),
		newClearCmd(&configPath),
		newInfoCmd(&configPath),
	)
	return root
}

func newDayCmd() *cobra.Command {
	var (
		start, end     string
		allocH, allocM int
	)
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Compute worked hours and overtime for one shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			shift, err := calc.Daily(start, end, calc.ToDecimal(allocH, allocM))
			if err != nil {
				return err
			}
			s, _ := calc.ParseClock(start)
			e, _ := calc.ParseClock(end)
			fmt.Fprintf(cmd.OutOrStdout(), "Shift:   %s -> %s\n", calc.FormatClock(s), calc.FormatClock(e))
			fmt.Fprintf(cmd.OutOrStdout(), "Worked:  %s\nBalance: %s\n", format.To2(shift.Worked), format.To2(shift.Balance))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "shift start, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "shift end, HH:MM")
	cmd.Flags().IntVar(&allocH, "alloc-h", 0, "allocated hours")
	cmd.Flags().IntVar(&allocM, "alloc-m", 0, "allocated minutes")
	return cmd
}

func newSaveCmd(configPath *string) *cobra.Command {
	var e tracker.Entry
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the record for a day, replacing any existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.tracker.SaveEntry(e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Line())
			return nil
		},
	}
	cmd.Flags().StringVar(&e.Date, "date", time.Now().Format(tracker.DateLayout), "day, YYYY-MM-DD")
	cmd.Flags().StringVar(&e.Start, "start", "", "shift start, HH:MM")
	cmd.Flags().StringVar(&e.End, "end", "", "shift end, HH:MM")
	cmd.Flags().IntVar(&e.AllocHours, "alloc-h", 0, "allocated hours")
	cmd.Flags().IntVar(&e.AllocMinutes, "alloc-m", 0, "allocated minutes")
	cmd.Flags().IntVar(&e.CargoHours, "cargo-h", 0, "cargo late hours")
	cmd.Flags().IntVar(&e.CargoMinutes, "cargo-m", 0, "cargo late minutes")
	return cmd
}

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, r := range a.tracker.Records.Records() {
				fmt.Fprintln(cmd.OutOrStdout(), r.Line())
			}
			return nil
		},
	}
}

func newPayCmd(configPath *string) *cobra.Command {
	var from, to, xlsxPath string
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Sum hours and pay over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)

			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.tracker.Week(from, to)
			if err != nil {
				return err
			}
			printPay(cmd.OutOrStdout(), p)

			if xlsxPath == "" {
				return nil
			}
			var inRange []record.Record
			for _, r := range a.tracker.Records.Records() {
				if r.Date >= from && r.Date <= to {
					inRange = append(inRange, r)
				}
			}
			return sheet.WriteFile(xlsxPath, inRange, &sheet.Summary{From: from, To: to, Pay: p})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the range and pay breakdown to this workbook")
	return cmd
}

func printPay(w io.Writer, p calc.Pay) {
	fmt.Fprintf(w, "Days:           %d\n", p.Days)
	fmt.Fprintf(w, "Worked hours:   %s\n", format.To2(p.NormalHours))
	fmt.Fprintf(w, "Overtime:       %s\n", format.To2(p.TotalOvertime))
	fmt.Fprintf(w, "Cargo late:     %s\n", format.To2(p.TotalCargoLate))
	fmt.Fprintf(w, "Work pay:       %s\n", format.To2(p.WorkPay))
	fmt.Fprintf(w, "Overtime pay:   %s\n", format.To2(p.OverTimePay))
	fmt.Fprintf(w, "Night pay:      %s\n", format.To2(p.NightTimePay))
	fmt.Fprintf(w, "Cargo late pay: %s\n", format.To2(p.CargoLatePay))
	fmt.Fprintf(w, "Total pay:      %s\n", format.To2(p.TotalPay))
}

func newSettingsCmd(configPath *string) *cobra.Command {
	var rate, multiplier, night string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the pay rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.tracker.Settings
			if cmd.Flags().Changed("rate") {
				st.SetHourlyRate(rate)
			}
			if cmd.Flags().Changed("multiplier") {
				st.SetOvertimeMultiplier(multiplier)
			}
			if cmd.Flags().Changed("night") {
				st.SetNightPayRate(night)
			}

			s := st.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "Hourly rate:         %s\nOvertime multiplier: %s\nNight pay rate:      %s\n",
				format.To2(s.HourlyRate), format.To2(s.OvertimeMultiplier), format.To2(s.NightPayRate))
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "hourly rate")
	cmd.Flags().StringVar(&multiplier, "multiplier", "", "overtime multiplier")
	cmd.Flags().StringVar(&night, "night", "", "night pay per normal hour")
	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var fileFormat string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write all records as JSON (stdout when no file is given) or xlsx",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			switch fileFormat {
			case "json":
				text, err := a.tracker.Records.ExportToText()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), text)
					return nil
				}
				return os.WriteFile(args[0], []byte(text), 0644)
			case "xlsx":
				if len(args) == 0 {
					return errors.New("xlsx export needs a file name")
				}
				a.tracker.Records.Reconcile()
				return sheet.WriteFile(args[0], a.tracker.Records.Records(), nil)
			default:
				return fmt.Errorf("unknown format %q, expected json or xlsx", fileFormat)
			}
		},
	}
	cmd.Flags().StringVar(&fileFormat, "format", "json", "json or xlsx")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all records with the JSON array in file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.tracker.Records.ImportFromText(string(data)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s)\n", a.tracker.Records.Len())
			return nil
		},
	}
}

func newClearCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			confirm := func() bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete all %d record(s)? [y/N] ", a.tracker.Records.Len())
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				return strings.EqualFold(strings.TrimSpace(line), "y")
			}
			if a.tracker.Clear(confirm) {
				fmt.Fprintln(cmd.OutOrStdout(), "All records cleared")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newInfoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where data is kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			keys, err := a.repo.Keys()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:   %s\n", a.cfgPath)
			fmt.Fprintf(out, "Database: %s\n", a.cfg.Database.Path)
			fmt.Fprintf(out, "Log file: %s\n", a.cfg.Log.File)
			fmt.Fprintf(out, "Records:  %d\n", a.tracker.Records.Len())
			fmt.Fprintf(out, "Keys:     %s\n", strings.Join(keys, ", "))
			return nil
		},
	}
}
