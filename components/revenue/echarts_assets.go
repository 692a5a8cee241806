package revenue

import (
	"os"
	"strings"
)

// envEChartsCDN overrides the host the chart runtime and themes load from.
const envEChartsCDN = "REVENUE_ECHARTS_CDN"

// DefaultEChartsAssetsHost returns REVENUE_ECHARTS_CDN when set. An
// empty result keeps the go-echarts default host.
func DefaultEChartsAssetsHost() string {
	return ensureTrailingSlash(strings.TrimSpace(os.Getenv(envEChartsCDN)))
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
