package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// securityAnalystSystem - системный промпт, общий для обоих провайдеров
const securityAnalystSystem = `You are an expert security analyst specializing in Akamai configurations.

Analyze Akamai security configurations against provided security rules.
Provide detailed security assessments with clear recommendations.
Score configurations based on compliance with security rules.
Identify critical security gaps and vulnerabilities.
Suggest specific improvements for each security finding.`

// BuildConfigAnalysisPrompt строит детерминированный промпт для анализа конфигурации:
// правила списком через дефис, конфигурация - indented JSON в fenced-блоке,
// в конце фиксированный блок инструкций
func BuildConfigAnalysisPrompt(config any, rules []string) (string, error) {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("config serialization failed: %w", err)
	}

	ruleLines := make([]string, 0, len(rules))
	for _, rule := range rules {
		ruleLines = append(ruleLines, "- "+rule)
	}

	return fmt.Sprintf(
		`Analyze this Akamai security configuration against the following rules:

Rules to check:
%s

Configuration:
`+"```json\n%s\n```"+`

Provide a detailed security analysis with:
1. Overall security score
2. Rule-by-rule assessment
3. Critical findings
4. Recommendations
`,
		strings.Join(ruleLines, "\n"),
		string(configJSON),
	), nil
}
