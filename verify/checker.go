package verify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/yairfalse/valvo/azure"
	"github.com/yairfalse/valvo/retry"
	"github.com/yairfalse/valvo/telemetry"
)

const (
	probeTimeout      = 10 * time.Second
	maxProbeRedirects = 5
)

// Checker runs deployment checks through the retry engine plus a bounded
// HTTP reachability probe.
type Checker struct {
	engine *retry.Engine
	policy retry.Policy
	client *http.Client
	logger *telemetry.Logger

	// appURL builds the probe target for a function app
	appURL func(name string) string
}

// Targets names the resources one run should verify. Empty fields skip
// their check. URL overrides the function app's default hostname for the
// probe, and is probed on its own when no app is named.
type Targets struct {
	ResourceGroup  string
	FunctionApp    string
	StorageAccount string
	AppInsights    string
	URL            string
}

// NewChecker creates a checker using the given retry policy for CLI reads
func NewChecker(engine *retry.Engine, policy retry.Policy, logger *telemetry.Logger) *Checker {
	return &Checker{
		engine: engine,
		policy: policy,
		client: newProbeClient(),
		logger: logger,
		appURL: func(name string) string {
			return fmt.Sprintf("https://%s.azurewebsites.net", name)
		},
	}
}

func newProbeClient() *http.Client {
	return &http.Client{
		Timeout: probeTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxProbeRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// Run executes every requested check and collects the findings
func (c *Checker) Run(ctx context.Context, targets Targets) Report {
	report := Report{ResourceGroup: targets.ResourceGroup}

	if targets.URL != "" {
		c.appURL = func(string) string { return targets.URL }
	}

	if targets.FunctionApp != "" {
		report.Results = append(report.Results, c.CheckFunctionApp(ctx, targets.FunctionApp, targets.ResourceGroup)...)
	} else if targets.URL != "" {
		report.Results = append(report.Results, c.ProbeEndpoint(ctx, targets.URL))
	}
	if targets.StorageAccount != "" {
		report.Results = append(report.Results, c.CheckStorageAccount(ctx, targets.StorageAccount, targets.ResourceGroup))
	}
	if targets.AppInsights != "" {
		report.Results = append(report.Results, c.CheckAppInsights(ctx, targets.AppInsights, targets.ResourceGroup))
	}

	log := c.logger.WithContext(ctx)
	for _, res := range report.Results {
		if res.Status != StatusHealthy {
			log.Warn().
				Str("check", res.Name).
				Str("status", string(res.Status)).
				Str("detail", res.Detail).
				Msg("verification check unhealthy")
		}
	}

	return report
}

// CheckFunctionApp verifies the app exists and is running, then probes
// its default hostname
func (c *Checker) CheckFunctionApp(ctx context.Context, name, resourceGroup string) []CheckResult {
	label := "Function App " + name
	res := c.engine.Do(ctx, c.policy, "show function app "+name, azure.Command(
		"functionapp", "show",
		"--name", name,
		"--resource-group", resourceGroup,
		"--query", "state",
		"--output", "tsv",
	))
	if !res.Succeeded {
		return []CheckResult{showFailure(label, res)}
	}

	state := strings.TrimSpace(res.Output)
	result := CheckResult{Name: label, Status: StatusHealthy, Detail: state}
	if !strings.EqualFold(state, "Running") {
		result.Status = StatusDegraded
		result.Detail = "state " + state
	}

	return []CheckResult{result, c.ProbeEndpoint(ctx, c.appURL(name))}
}

// CheckStorageAccount verifies the account exists and finished provisioning
func (c *Checker) CheckStorageAccount(ctx context.Context, name, resourceGroup string) CheckResult {
	label := "Storage Account " + name
	res := c.engine.Do(ctx, c.policy, "show storage account "+name, azure.Command(
		"storage", "account", "show",
		"--name", name,
		"--resource-group", resourceGroup,
		"--query", "provisioningState",
		"--output", "tsv",
	))
	if !res.Succeeded {
		return showFailure(label, res)
	}

	state := strings.TrimSpace(res.Output)
	if !strings.EqualFold(state, "Succeeded") {
		return CheckResult{Name: label, Status: StatusDegraded, Detail: "provisioning state " + state}
	}
	return CheckResult{Name: label, Status: StatusHealthy, Detail: state}
}

// CheckAppInsights verifies the component exists. A missing component is
// a warning, not a failure.
func (c *Checker) CheckAppInsights(ctx context.Context, name, resourceGroup string) CheckResult {
	label := "App Insights " + name
	res := c.engine.Do(ctx, c.policy, "show app insights "+name, azure.Command(
		"monitor", "app-insights", "component", "show",
		"--app", name,
		"--resource-group", resourceGroup,
		"--query", "provisioningState",
		"--output", "tsv",
	))
	if !res.Succeeded {
		return showFailure(label, res)
	}
	return CheckResult{Name: label, Status: StatusHealthy, Detail: strings.TrimSpace(res.Output)}
}

// ProbeEndpoint sends a HEAD request to the URL. An auth challenge means
// the app behind it is up, so 401 and 403 count as reachable.
func (c *Checker) ProbeEndpoint(ctx context.Context, url string) CheckResult {
	label := "Endpoint " + url
	span := trace.SpanFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		telemetry.RecordProbeCompletedEvent(span, url, 0, false)
		return CheckResult{Name: label, Status: StatusDegraded, Detail: "bad probe url: " + err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		telemetry.RecordProbeCompletedEvent(span, url, 0, false)
		return CheckResult{Name: label, Status: StatusDegraded, Detail: "unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	healthy := probeHealthy(resp.StatusCode)
	telemetry.RecordProbeCompletedEvent(span, url, resp.StatusCode, healthy)

	detail := fmt.Sprintf("status %d", resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		detail = "status 401, auth required (app is up)"
	case http.StatusForbidden:
		detail = "status 403, reachable but restricted"
	}

	if !healthy {
		return CheckResult{Name: label, Status: StatusDegraded, Detail: detail}
	}
	return CheckResult{Name: label, Status: StatusHealthy, Detail: detail}
}

func probeHealthy(code int) bool {
	if code >= 200 && code < 400 {
		return true
	}
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func showFailure(label string, res retry.Result) CheckResult {
	if strings.Contains(res.Output, "ResourceNotFound") || strings.Contains(res.Output, "was not found") {
		return CheckResult{Name: label, Status: StatusMissing, Detail: "not found"}
	}
	return CheckResult{Name: label, Status: StatusDegraded, Detail: fmt.Sprintf("lookup failed (%s)", res.Class)}
}
