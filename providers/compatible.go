package providers

import (
	"cmp"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/openai"
	S "github.com/petal-labs/prism/settings"
)

// Attribution headers sent to routers that rank client applications.
const (
	appReferer = "https://github.com/petal-labs/prism"
	appTitle   = "Prism"
)

// Default endpoints of the OpenAI-compatible backends.
const (
	glamaURL          = "https://glama.ai/api/gateway/openai/v1"
	openRouterURL     = "https://openrouter.ai/api/v1"
	deepSeekURL       = "https://api.deepseek.com"
	doubaoURL         = "https://ark.cn-beijing.volces.com/api/v3"
	moonshotURL       = "https://api.moonshot.ai/v1"
	mistralURL        = "https://api.mistral.ai/v1"
	codestralURL      = "https://codestral.mistral.ai/v1"
	unboundURL        = "https://api.getunbound.ai/v1"
	requestyURL       = "https://router.requesty.ai/v1"
	xaiURL            = "https://api.x.ai/v1"
	groqURL           = "https://api.groq.com/openai/v1"
	deepInfraURL      = "https://api.deepinfra.com/v1/openai"
	huggingFaceURL    = "https://router.huggingface.co/v1"
	chutesURL         = "https://llm.chutes.ai/v1"
	liteLLMURL        = "http://localhost:4000"
	cerebrasURL       = "https://api.cerebras.ai/v1"
	sambaNovaURL      = "https://api.sambanova.ai/v1"
	zaiInternational  = "https://api.z.ai/api/paas/v4"
	zaiChina          = "https://open.bigmodel.cn/api/paas/v4"
	fireworksURL      = "https://api.fireworks.ai/inference/v1"
	ioIntelligenceURL = "https://api.intelligence.io.solutions/api/v1"
	rooURL            = "https://api.roocode.com/proxy/v1"
	featherlessURL    = "https://api.featherless.ai/v1"
	vercelURL         = "https://ai-gateway.vercel.sh/v1"
	lmStudioURL       = "http://localhost:1234"
	defaultAWSRegion  = "us-east-1"
)

// profile describes one OpenAI-compatible backend.
type profile struct {
	provider S.ProviderName
	baseURL  string
	apiKey   string
	modelID  string
	extra    []openai.Option
}

// compatible builds the shared Chat Completions handler for p.
func (b *builder) compatible(o *S.Options, p profile) core.Handler {
	modelID := p.modelID
	if modelID == "" {
		modelID = o.APIModelID
	}
	opts := []openai.Option{
		openai.WithProvider(string(p.provider)),
		openai.WithBaseURL(p.baseURL),
		openai.WithAPIKey(p.apiKey),
		openai.WithModel(modelID),
		openai.WithMaxTokens(o.ModelMaxTokens),
		openai.WithTemperature(o.ModelTemperature),
		openai.WithReasoningEffort(o.ReasoningEffort),
		openai.WithHTTPClient(b.httpClient),
		openai.WithLogger(b.log),
		openai.WithTelemetry(b.telemetry),
	}
	return openai.New(append(opts, p.extra...)...)
}

func buildOpenAI(b *builder, o *S.Options) core.Handler {
	extra := []openai.Option{
		openai.WithModelInfo(o.OpenAICustomModelInfo),
		openai.WithThinkTags(true),
	}
	if o.OpenAIUseAzure {
		extra = append(extra, openai.WithAzure(o.AzureAPIVersion))
	}
	if o.OpenAIStreamingEnabled != nil {
		extra = append(extra, openai.WithStreaming(*o.OpenAIStreamingEnabled))
	}
	for k, v := range o.OpenAIHeaders {
		extra = append(extra, openai.WithHeader(k, v))
	}
	return b.compatible(o, profile{
		provider: S.OpenAI,
		baseURL:  cmp.Or(o.OpenAIBaseURL, openai.DefaultBaseURL),
		apiKey:   o.OpenAIAPIKey,
		modelID:  o.OpenAIModelID,
		extra:    extra,
	})
}

func buildGlama(b *builder, o *S.Options) core.Handler {
	meta, _ := json.Marshal(map[string]any{
		"labels": []map[string]string{{"key": "app", "value": appTitle}},
	})
	return b.compatible(o, profile{
		provider: S.Glama,
		baseURL:  glamaURL,
		apiKey:   o.GlamaAPIKey,
		modelID:  o.GlamaModelID,
		extra:    []openai.Option{openai.WithHeader("X-Glama-Metadata", string(meta))},
	})
}

func buildOpenRouter(b *builder, o *S.Options) core.Handler {
	extra := []openai.Option{
		openai.WithHeader("HTTP-Referer", appReferer),
		openai.WithHeader("X-Title", appTitle),
		openai.WithBodyField("usage", map[string]any{"include": true}),
	}
	if p := o.OpenRouterSpecificProvider; p != "" && p != "[default]" {
		extra = append(extra, openai.WithBodyField("provider", map[string]any{
			"order":           []string{p},
			"only":            []string{p},
			"allow_fallbacks": false,
		}))
	}
	return b.compatible(o, profile{
		provider: S.OpenRouter,
		baseURL:  cmp.Or(o.OpenRouterBaseURL, openRouterURL),
		apiKey:   o.OpenRouterAPIKey,
		modelID:  o.OpenRouterModelID,
		extra:    extra,
	})
}

// buildBedrock uses Bedrock's OpenAI-compatible runtime endpoint, which
// accepts a Bedrock API key as a bearer token.
func buildBedrock(b *builder, o *S.Options) core.Handler {
	base := o.AWSBedrockURL
	if base == "" {
		base = "https://bedrock-runtime." + cmp.Or(o.AWSRegion, defaultAWSRegion) + ".amazonaws.com/openai/v1"
	}
	return b.compatible(o, profile{
		provider: S.Bedrock,
		baseURL:  base,
		apiKey:   o.AWSAPIKey,
	})
}

func buildLMStudio(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.LMStudio,
		baseURL:  strings.TrimRight(cmp.Or(o.LMStudioBaseURL, lmStudioURL), "/") + "/v1",
		modelID:  o.LMStudioModelID,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildDeepSeek(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.DeepSeek,
		baseURL:  cmp.Or(o.DeepSeekBaseURL, deepSeekURL),
		apiKey:   o.DeepSeekAPIKey,
	})
}

func buildDoubao(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Doubao,
		baseURL:  cmp.Or(o.DoubaoBaseURL, doubaoURL),
		apiKey:   o.DoubaoAPIKey,
	})
}

func buildMoonshot(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Moonshot,
		baseURL:  cmp.Or(o.MoonshotBaseURL, moonshotURL),
		apiKey:   o.MoonshotAPIKey,
	})
}

// buildMistral routes Codestral models to their dedicated endpoint.
func buildMistral(b *builder, o *S.Options) core.Handler {
	base := mistralURL
	if strings.HasPrefix(o.APIModelID, "codestral") {
		base = cmp.Or(o.MistralCodestralURL, codestralURL)
	}
	return b.compatible(o, profile{
		provider: S.Mistral,
		baseURL:  base,
		apiKey:   o.MistralAPIKey,
		extra:    []openai.Option{openai.WithoutStreamUsage()},
	})
}

func buildUnbound(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Unbound,
		baseURL:  unboundURL,
		apiKey:   o.UnboundAPIKey,
		modelID:  o.UnboundModelID,
		extra: []openai.Option{openai.WithRequestBody(func(meta *core.Metadata) map[string]any {
			m := map[string]any{"originApp": strings.ToLower(appTitle)}
			if meta != nil {
				m["taskId"] = meta.TaskID
				m["mode"] = meta.Mode
			}
			return map[string]any{"unbound_metadata": m}
		})},
	})
}

func buildRequesty(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Requesty,
		baseURL:  cmp.Or(o.RequestyBaseURL, requestyURL),
		apiKey:   o.RequestyAPIKey,
		modelID:  o.RequestyModelID,
		extra: []openai.Option{
			openai.WithHeader("HTTP-Referer", appReferer),
			openai.WithHeader("X-Title", appTitle),
			openai.WithRequestBody(func(meta *core.Metadata) map[string]any {
				if meta == nil {
					return nil
				}
				return map[string]any{"requesty": map[string]any{
					"trace_id": meta.TaskID,
					"extra":    map[string]any{"mode": meta.Mode},
				}}
			}),
		},
	})
}

func buildXAI(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{provider: S.XAI, baseURL: xaiURL, apiKey: o.XAIAPIKey})
}

func buildGroq(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Groq,
		baseURL:  groqURL,
		apiKey:   o.GroqAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildDeepInfra(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.DeepInfra,
		baseURL:  cmp.Or(o.DeepInfraBaseURL, deepInfraURL),
		apiKey:   o.DeepInfraAPIKey,
		modelID:  o.DeepInfraModelID,
	})
}

// buildHuggingFace pins an inference provider with the router's
// "model:provider" suffix.
func buildHuggingFace(b *builder, o *S.Options) core.Handler {
	modelID := o.HuggingFaceModelID
	if p := o.HuggingFaceInferenceProvider; modelID != "" && p != "" && p != "auto" {
		modelID += ":" + p
	}
	return b.compatible(o, profile{
		provider: S.HuggingFace,
		baseURL:  huggingFaceURL,
		apiKey:   o.HuggingFaceAPIKey,
		modelID:  modelID,
	})
}

func buildChutes(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Chutes,
		baseURL:  chutesURL,
		apiKey:   o.ChutesAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

// buildLiteLLM marks the system message cacheable when prompt caching is
// enabled; the proxy forwards the marker to backends that support it.
func buildLiteLLM(b *builder, o *S.Options) core.Handler {
	var extra []openai.Option
	if o.LiteLLMUsePromptCache {
		extra = append(extra, openai.WithSystemBodyField("messages.0.cache_control", map[string]string{"type": "ephemeral"}))
	}
	return b.compatible(o, profile{
		provider: S.LiteLLM,
		baseURL:  cmp.Or(o.LiteLLMBaseURL, liteLLMURL),
		apiKey:   o.LiteLLMAPIKey,
		modelID:  o.LiteLLMModelID,
		extra:    extra,
	})
}

func buildCerebras(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Cerebras,
		baseURL:  cerebrasURL,
		apiKey:   o.CerebrasAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildSambaNova(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.SambaNova,
		baseURL:  sambaNovaURL,
		apiKey:   o.SambaNovaAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildZAI(b *builder, o *S.Options) core.Handler {
	base := zaiInternational
	if o.ZAIAPILine == "china" {
		base = zaiChina
	}
	return b.compatible(o, profile{provider: S.ZAI, baseURL: base, apiKey: o.ZAIAPIKey})
}

func buildFireworks(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Fireworks,
		baseURL:  fireworksURL,
		apiKey:   o.FireworksAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildIOIntelligence(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.IOIntelligence,
		baseURL:  ioIntelligenceURL,
		apiKey:   o.IOIntelligenceAPIKey,
		modelID:  o.IOIntelligenceModelID,
	})
}

// buildRoo authenticates with the Roo Code Cloud session token.
func buildRoo(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Roo,
		baseURL:  cmp.Or(o.RooBaseURL, rooURL),
		apiKey:   o.RooSessionToken,
		extra: []openai.Option{openai.WithRequestHeaders(func(meta *core.Metadata) map[string]string {
			if meta == nil {
				return nil
			}
			return map[string]string{"X-Roo-Task-ID": meta.TaskID}
		})},
	})
}

func buildFeatherless(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.Featherless,
		baseURL:  featherlessURL,
		apiKey:   o.FeatherlessAPIKey,
		extra:    []openai.Option{openai.WithThinkTags(true)},
	})
}

func buildVercel(b *builder, o *S.Options) core.Handler {
	return b.compatible(o, profile{
		provider: S.VercelAIGateway,
		baseURL:  vercelURL,
		apiKey:   o.VercelAIGatewayAPIKey,
		modelID:  o.VercelAIGatewayModelID,
		extra: []openai.Option{
			openai.WithHeader("HTTP-Referer", appReferer),
			openai.WithHeader("X-Title", appTitle),
		},
	})
}
