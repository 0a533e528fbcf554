package providers

import (
	"strings"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/credentials"
	"github.com/petal-labs/prism/providers/anthropic"
	"github.com/petal-labs/prism/providers/claudecode"
	"github.com/petal-labs/prism/providers/gemini"
	"github.com/petal-labs/prism/providers/host"
	"github.com/petal-labs/prism/providers/internal/gcp"
	"github.com/petal-labs/prism/providers/ollama"
	"github.com/petal-labs/prism/providers/openainative"
	"github.com/petal-labs/prism/providers/qwencode"
	S "github.com/petal-labs/prism/settings"
)

// binding ties one credential field to its canonical variable and the
// flag that enables the override.
type binding struct {
	field  func(*S.Options) *string
	flag   func(*S.Options) bool
	envVar string
}

type entry struct {
	creds []binding
	build func(b *builder, o *S.Options) core.Handler
}

func bind(envVar string, field func(*S.Options) *string, flag func(*S.Options) bool) []binding {
	return []binding{{field: field, flag: flag, envVar: envVar}}
}

// table has one entry per known tag. Entries without creds take their
// credentials from files, hosts or the configuration only.
var table = map[S.ProviderName]entry{
	S.Anthropic: {
		creds: bind(credentials.AnthropicAPIKey,
			func(o *S.Options) *string { return &o.APIKey },
			func(o *S.Options) bool { return o.AnthropicConfigUseEnvVars }),
		build: buildAnthropic,
	},
	S.ClaudeCode: {build: buildClaudeCode},
	S.Glama: {
		creds: bind(credentials.GlamaAPIKey,
			func(o *S.Options) *string { return &o.GlamaAPIKey },
			func(o *S.Options) bool { return o.GlamaConfigUseEnvVars }),
		build: buildGlama,
	},
	S.OpenRouter: {
		creds: bind(credentials.OpenRouterAPIKey,
			func(o *S.Options) *string { return &o.OpenRouterAPIKey },
			func(o *S.Options) bool { return o.OpenRouterConfigUseEnvVars }),
		build: buildOpenRouter,
	},
	S.Bedrock: {build: buildBedrock},
	S.Vertex:  {build: buildVertex},
	S.OpenAI: {
		creds: bind(credentials.OpenAIAPIKey,
			func(o *S.Options) *string { return &o.OpenAIAPIKey },
			func(o *S.Options) bool { return o.OpenAIConfigUseEnvVars }),
		build: buildOpenAI,
	},
	S.Ollama:   {build: buildOllama},
	S.LMStudio: {build: buildLMStudio},
	S.Gemini: {
		creds: bind(credentials.GeminiAPIKey,
			func(o *S.Options) *string { return &o.GeminiAPIKey },
			func(o *S.Options) bool { return o.GeminiConfigUseEnvVars }),
		build: buildGemini,
	},
	S.OpenAINative: {
		creds: bind(credentials.OpenAIAPIKey,
			func(o *S.Options) *string { return &o.OpenAINativeAPIKey },
			func(o *S.Options) bool { return o.OpenAINativeConfigUseEnvVars }),
		build: buildOpenAINative,
	},
	S.DeepSeek: {
		creds: bind(credentials.DeepSeekAPIKey,
			func(o *S.Options) *string { return &o.DeepSeekAPIKey },
			func(o *S.Options) bool { return o.DeepSeekConfigUseEnvVars }),
		build: buildDeepSeek,
	},
	S.Doubao: {
		creds: bind(credentials.DoubaoAPIKey,
			func(o *S.Options) *string { return &o.DoubaoAPIKey },
			func(o *S.Options) bool { return o.DoubaoConfigUseEnvVars }),
		build: buildDoubao,
	},
	S.QwenCode: {build: buildQwenCode},
	S.Moonshot: {
		creds: bind(credentials.MoonshotAPIKey,
			func(o *S.Options) *string { return &o.MoonshotAPIKey },
			func(o *S.Options) bool { return o.MoonshotConfigUseEnvVars }),
		build: buildMoonshot,
	},
	S.VSCodeLM: {
		build: func(b *builder, o *S.Options) core.Handler {
			return host.NewHostModel(b.lm, o.VSCodeLMModelSelector, host.WithTelemetry(b.telemetry))
		},
	},
	S.Mistral: {
		creds: bind(credentials.MistralAPIKey,
			func(o *S.Options) *string { return &o.MistralAPIKey },
			func(o *S.Options) bool { return o.MistralConfigUseEnvVars }),
		build: buildMistral,
	},
	S.Unbound: {
		creds: bind(credentials.UnboundAPIKey,
			func(o *S.Options) *string { return &o.UnboundAPIKey },
			func(o *S.Options) bool { return o.UnboundConfigUseEnvVars }),
		build: buildUnbound,
	},
	S.Requesty: {
		creds: bind(credentials.RequestyAPIKey,
			func(o *S.Options) *string { return &o.RequestyAPIKey },
			func(o *S.Options) bool { return o.RequestyConfigUseEnvVars }),
		build: buildRequesty,
	},
	S.HumanRelay: {
		build: func(b *builder, _ *S.Options) core.Handler {
			return host.NewHumanRelay(b.relay, host.WithTelemetry(b.telemetry))
		},
	},
	S.FakeAI: {
		build: func(b *builder, o *S.Options) core.Handler {
			return host.NewFake(o.FakeAI, host.WithTelemetry(b.telemetry))
		},
	},
	S.XAI: {
		creds: bind(credentials.XAIAPIKey,
			func(o *S.Options) *string { return &o.XAIAPIKey },
			func(o *S.Options) bool { return o.XAIConfigUseEnvVars }),
		build: buildXAI,
	},
	S.Groq: {
		creds: bind(credentials.GroqAPIKey,
			func(o *S.Options) *string { return &o.GroqAPIKey },
			func(o *S.Options) bool { return o.GroqConfigUseEnvVars }),
		build: buildGroq,
	},
	S.DeepInfra: {
		creds: bind(credentials.DeepInfraAPIKey,
			func(o *S.Options) *string { return &o.DeepInfraAPIKey },
			func(o *S.Options) bool { return o.DeepInfraConfigUseEnvVars }),
		build: buildDeepInfra,
	},
	S.HuggingFace: {
		creds: bind(credentials.HuggingFaceAPIKey,
			func(o *S.Options) *string { return &o.HuggingFaceAPIKey },
			func(o *S.Options) bool { return o.HuggingFaceConfigUseEnvVars }),
		build: buildHuggingFace,
	},
	S.Chutes: {
		creds: bind(credentials.ChutesAPIKey,
			func(o *S.Options) *string { return &o.ChutesAPIKey },
			func(o *S.Options) bool { return o.ChutesConfigUseEnvVars }),
		build: buildChutes,
	},
	S.LiteLLM: {
		creds: bind(credentials.LiteLLMAPIKey,
			func(o *S.Options) *string { return &o.LiteLLMAPIKey },
			func(o *S.Options) bool { return o.LiteLLMConfigUseEnvVars }),
		build: buildLiteLLM,
	},
	S.Cerebras: {
		creds: bind(credentials.CerebrasAPIKey,
			func(o *S.Options) *string { return &o.CerebrasAPIKey },
			func(o *S.Options) bool { return o.CerebrasConfigUseEnvVars }),
		build: buildCerebras,
	},
	S.SambaNova: {
		creds: bind(credentials.SambaNovaAPIKey,
			func(o *S.Options) *string { return &o.SambaNovaAPIKey },
			func(o *S.Options) bool { return o.SambaNovaConfigUseEnvVars }),
		build: buildSambaNova,
	},
	S.ZAI: {
		creds: bind(credentials.ZAIAPIKey,
			func(o *S.Options) *string { return &o.ZAIAPIKey },
			func(o *S.Options) bool { return o.ZAIConfigUseEnvVars }),
		build: buildZAI,
	},
	S.Fireworks: {
		creds: bind(credentials.FireworksAPIKey,
			func(o *S.Options) *string { return &o.FireworksAPIKey },
			func(o *S.Options) bool { return o.FireworksConfigUseEnvVars }),
		build: buildFireworks,
	},
	S.IOIntelligence: {
		creds: bind(credentials.IOIntelligenceAPIKey,
			func(o *S.Options) *string { return &o.IOIntelligenceAPIKey },
			func(o *S.Options) bool { return o.IOIntelligenceConfigUseEnvVars }),
		build: buildIOIntelligence,
	},
	S.Roo: {build: buildRoo},
	S.Featherless: {
		creds: bind(credentials.FeatherlessAPIKey,
			func(o *S.Options) *string { return &o.FeatherlessAPIKey },
			func(o *S.Options) bool { return o.FeatherlessConfigUseEnvVars }),
		build: buildFeatherless,
	},
	S.VercelAIGateway: {
		creds: bind(credentials.VercelAPIKey,
			func(o *S.Options) *string { return &o.VercelAIGatewayAPIKey },
			func(o *S.Options) bool { return o.VercelConfigUseEnvVars }),
		build: buildVercel,
	},
}

func buildAnthropic(b *builder, o *S.Options) core.Handler {
	return anthropic.New(append(anthropicCommon(b, o),
		anthropic.WithAPIKey(o.APIKey),
		anthropic.WithAuthToken(o.AnthropicUseAuthToken),
		anthropic.WithBaseURL(o.AnthropicBaseURL),
		anthropic.With1MContext(o.AnthropicBeta1MContext),
	)...)
}

func anthropicCommon(b *builder, o *S.Options) []anthropic.Option {
	return []anthropic.Option{
		anthropic.WithModel(o.APIModelID),
		anthropic.WithMaxTokens(o.ModelMaxTokens),
		anthropic.WithThinkingBudget(o.ModelMaxThinkingTokens),
		anthropic.WithTemperature(o.ModelTemperature),
		anthropic.WithHTTPClient(b.httpClient),
		anthropic.WithLogger(b.log),
		anthropic.WithTelemetry(b.telemetry),
	}
}

func buildClaudeCode(b *builder, o *S.Options) core.Handler {
	return claudecode.New(
		claudecode.WithPath(o.ClaudeCodePath),
		claudecode.WithModel(o.APIModelID),
		claudecode.WithMaxOutputTokens(o.ClaudeCodeMaxOutputTokens),
		claudecode.WithLogger(b.log),
		claudecode.WithTelemetry(b.telemetry),
	)
}

const defaultVertexRegion = "us-east5"

// buildVertex serves Claude ids through the Anthropic adapter and
// everything else through Gemini.
func buildVertex(b *builder, o *S.Options) core.Handler {
	creds := &gcp.Credentials{JSON: o.VertexJSONCredentials, KeyFile: o.VertexKeyFile}
	region := o.VertexRegion
	if region == "" {
		region = defaultVertexRegion
	}
	if strings.HasPrefix(o.APIModelID, "claude") {
		return anthropic.New(append(anthropicCommon(b, o),
			anthropic.WithVertex(anthropic.VertexConfig{
				ProjectID:   o.VertexProjectID,
				Region:      region,
				Credentials: creds,
			}),
		)...)
	}
	return gemini.New(append(geminiCommon(b, o),
		gemini.WithVertex(gemini.VertexConfig{
			ProjectID:   o.VertexProjectID,
			Region:      region,
			Credentials: creds,
		}),
	)...)
}

func buildGemini(b *builder, o *S.Options) core.Handler {
	return gemini.New(append(geminiCommon(b, o),
		gemini.WithAPIKey(o.GeminiAPIKey),
		gemini.WithBaseURL(o.GoogleGeminiBaseURL),
	)...)
}

func geminiCommon(b *builder, o *S.Options) []gemini.Option {
	return []gemini.Option{
		gemini.WithModel(o.APIModelID),
		gemini.WithMaxTokens(o.ModelMaxTokens),
		gemini.WithThinkingBudget(o.ModelMaxThinkingTokens),
		gemini.WithTemperature(o.ModelTemperature),
		gemini.WithHTTPClient(b.httpClient),
		gemini.WithLogger(b.log),
		gemini.WithTelemetry(b.telemetry),
	}
}

func buildOpenAINative(b *builder, o *S.Options) core.Handler {
	return openainative.New(
		openainative.WithAPIKey(o.OpenAINativeAPIKey),
		openainative.WithBaseURL(o.OpenAINativeBaseURL),
		openainative.WithModel(o.APIModelID),
		openainative.WithMaxTokens(o.ModelMaxTokens),
		openainative.WithTemperature(o.ModelTemperature),
		openainative.WithReasoningEffort(o.ReasoningEffort),
		openainative.WithServiceTier(o.OpenAINativeServiceTier),
		openainative.WithHTTPClient(b.httpClient),
		openainative.WithLogger(b.log),
		openainative.WithTelemetry(b.telemetry),
	)
}

func buildOllama(b *builder, o *S.Options) core.Handler {
	return ollama.New(
		ollama.WithAPIKey(o.OllamaAPIKey),
		ollama.WithBaseURL(o.OllamaBaseURL),
		ollama.WithModel(o.OllamaModelID),
		ollama.WithMaxTokens(o.ModelMaxTokens),
		ollama.WithTemperature(o.ModelTemperature),
		ollama.WithHTTPClient(b.httpClient),
		ollama.WithLogger(b.log),
		ollama.WithTelemetry(b.telemetry),
	)
}

func buildQwenCode(b *builder, o *S.Options) core.Handler {
	return qwencode.New(qwencode.Config{
		OAuthPath:   o.QwenCodeOAuthPath,
		ModelID:     o.APIModelID,
		MaxTokens:   o.ModelMaxTokens,
		Temperature: o.ModelTemperature,
		HTTPClient:  b.httpClient,
		Logger:      b.log,
		Telemetry:   b.telemetry,
	})
}
