package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/yairfalse/valvo/telemetry"
)

// CheckResult is one access finding
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the findings of one access verification
type Report struct {
	VaultName string        `json:"vault_name"`
	Results   []CheckResult `json:"results"`
}

// Healthy reports whether every check passed
func (r Report) Healthy() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Render produces the Markdown summary of the verification
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Vault access: %s\n\n", r.VaultName)

	healthy := 0
	for _, res := range r.Results {
		glyph := "⚠️"
		if res.OK {
			glyph = "✅"
			healthy++
		}
		fmt.Fprintf(&b, "%s %s: %s\n", glyph, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d of %d checks healthy\n", healthy, len(r.Results))
	return b.String()
}

// VerifyAccess checks the vault exists on the management plane and that
// the named secrets answer on the data plane. With no names it verifies
// listability instead. Findings are soft; nothing here fails the run.
func (s *Store) VerifyAccess(ctx context.Context, resourceGroup string, names []string) Report {
	report := Report{VaultName: s.vaultName}
	log := s.logger.WithContext(ctx)

	vaultCheck := CheckResult{Name: "Vault " + s.vaultName, OK: true, Detail: "reachable"}
	if _, err := s.vaults.Get(ctx, resourceGroup, s.vaultName, nil); err != nil {
		vaultCheck.OK = false
		vaultCheck.Detail = describeAccessError(err)
		log.Warn().
			Str("vault", s.vaultName).
			Err(err).
			Msg("vault lookup failed")
	}
	report.Results = append(report.Results, vaultCheck)

	if len(names) == 0 {
		report.Results = append(report.Results, s.checkListable(ctx))
		return report
	}

	for _, name := range names {
		check := CheckResult{Name: "Secret " + name, OK: true, Detail: "present"}
		if _, err := s.secrets.GetSecret(ctx, name, "", nil); err != nil {
			check.OK = false
			check.Detail = describeAccessError(err)
			log.Warn().
				Str("secret", name).
				Str("vault", s.vaultName).
				Msg("secret not accessible")
		} else {
			telemetry.SecretsVerified.Add(ctx, 1)
		}
		report.Results = append(report.Results, check)
	}

	return report
}

func (s *Store) checkListable(ctx context.Context) CheckResult {
	total := 0
	pager := s.secrets.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return CheckResult{Name: "Secret listing", Detail: describeAccessError(err)}
		}
		total += len(page.Value)
	}
	return CheckResult{
		Name:   "Secret listing",
		OK:     true,
		Detail: fmt.Sprintf("%d secrets visible", total),
	}
}

func describeAccessError(err error) string {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return "not found"
		case http.StatusForbidden:
			return "access denied"
		}
		return fmt.Sprintf("status %d", respErr.StatusCode)
	}
	return "unreachable: " + err.Error()
}
