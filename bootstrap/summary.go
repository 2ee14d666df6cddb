package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kbukum/injector/di"
)

// InfrastructureInfo describes a supporting service such as logging or
// telemetry export.
type InfrastructureInfo struct {
	Name    string
	Details string
	Healthy bool
}

// Summary prints what the application started with.
type Summary struct {
	serviceName     string
	version         string
	out             io.Writer
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
}

// NewSummary creates a summary writing to out, or stdout when out is nil.
func NewSummary(serviceName, version string, out io.Writer) *Summary {
	if out == nil {
		out = os.Stdout
	}
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         out,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackInfrastructure records a supporting service.
func (s *Summary) TrackInfrastructure(name, details string, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Details: details,
		Healthy: healthy,
	})
}

// Display prints the header, infrastructure and the binding table.
func (s *Summary) Display(bindings []di.BindingInfo) {
	w := s.out
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s %s: %s\n", treePrefix(i, len(s.infrastructure)), statusIcon(inf.Healthy), inf.Name, inf.Details)
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "🔗 Bindings (%d)\n", len(bindings))
	if len(bindings) == 0 {
		fmt.Fprintf(w, "   └── No bindings registered\n")
	}
	for i, b := range bindings {
		how := "zero value"
		if b.Constructor {
			how = "constructor"
		}
		fmt.Fprintf(w, "   %s %s → %s (%s)\n", treePrefix(i, len(bindings)), b.Capability, b.Concrete, how)
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(healthy bool) string {
	if healthy {
		return "✅"
	}
	return "❌"
}
