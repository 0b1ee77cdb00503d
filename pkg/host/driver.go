package host

import (
	"errors"
	"log/slog"

	"github.com/Manu343726/bodypatch/pkg/il"
	"github.com/Manu343726/bodypatch/pkg/logging"
	"github.com/Manu343726/bodypatch/pkg/patch"
	"github.com/Manu343726/bodypatch/pkg/utils"
)

// PatchReport is the outcome of patching a whole table against a host
type PatchReport struct {
	Results []patch.Result
	// Methods whose patched body was installed
	Installed []il.MethodID
	// Methods whose patched body was rejected by the host, keeping the original one
	Reverted []il.MethodID
}

// Summary counts the route results of the report
func (r PatchReport) Summary() patch.Summary {
	return patch.Summarize(r.Results)
}

// PatchAll runs the routes of every method in the table against the bodies supplied by the
// provider, and installs the patched bodies. Methods where no route applied are left untouched.
// If the host rejects a patched body the original one is installed back and the applied routes of
// the method are reported as failed.
func PatchAll(provider BodyProvider, installer Installer, orchestrator *patch.Orchestrator, table patch.Table, logger *slog.Logger) PatchReport {
	if logger == nil {
		logger = logging.Discard()
	}

	var report PatchReport

	for _, target := range table {
		log := logger.With(slog.String("method", target.Method.String()))

		original, err := provider.Body(target.Method)
		if err != nil {
			report.Results = append(report.Results, orchestrator.Skip(target.Method, target.Routes, err)...)
			continue
		}

		final, results := orchestrator.Patch(target.Method, original, target.Routes)

		if patch.Summarize(results).Applied == 0 {
			log.Debug("no route applied, keeping original body")
			report.Results = append(report.Results, results...)
			continue
		}

		if err := installer.Install(target.Method, final); err != nil {
			if !errors.Is(err, patch.ErrHostInstallation) {
				err = utils.MakeError(patch.ErrHostInstallation, "%v", err)
			}
			log.Error("host rejected patched body, reinstalling original", slog.Any("error", err),
				slog.Any("routes", utils.Map(results, func(r patch.Result) string { return r.Route })))

			if err := installer.Install(target.Method, original); err != nil {
				log.Error("host rejected original body", slog.Any("error", err))
			}

			report.Results = append(report.Results, utils.Map(results, func(r patch.Result) patch.Result {
				return r.RevertedByHost(err)
			})...)
			report.Reverted = append(report.Reverted, target.Method)
			continue
		}

		log.Debug("patched body installed", slog.Int("instructions", final.Len()))
		report.Results = append(report.Results, results...)
		report.Installed = append(report.Installed, target.Method)
	}

	return report
}
