package catalog

import (
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/settings"
)

var (
	claudeSonnet4 = core.ModelInfo{
		MaxTokens: 64_000, ContextWindow: 200_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
		InputPrice: 3, OutputPrice: 15, CacheWritesPrice: 3.75, CacheReadsPrice: 0.3,
	}
	claudeOpus41 = core.ModelInfo{
		MaxTokens: 32_000, ContextWindow: 200_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
		InputPrice: 15, OutputPrice: 75, CacheWritesPrice: 18.75, CacheReadsPrice: 1.5,
	}
	claudeSonnet37 = core.ModelInfo{
		MaxTokens: 8192, ContextWindow: 200_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
		InputPrice: 3, OutputPrice: 15, CacheWritesPrice: 3.75, CacheReadsPrice: 0.3,
	}
	claudeHaiku35 = core.ModelInfo{
		MaxTokens: 8192, ContextWindow: 200_000, SupportsPromptCache: true,
		InputPrice: 0.8, OutputPrice: 4, CacheWritesPrice: 1, CacheReadsPrice: 0.08,
	}
	gemini25Flash = core.ModelInfo{
		MaxTokens: 65_536, ContextWindow: 1_048_576, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
		InputPrice: 0.3, OutputPrice: 2.5, CacheReadsPrice: 0.075,
	}
	gemini25Pro = core.ModelInfo{
		MaxTokens: 65_536, ContextWindow: 1_048_576, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
		InputPrice: 1.25, OutputPrice: 10, CacheReadsPrice: 0.31,
	}
	gemini20Flash = core.ModelInfo{
		MaxTokens: 8192, ContextWindow: 1_048_576, SupportsImages: true, SupportsPromptCache: true,
		InputPrice: 0.1, OutputPrice: 0.4, CacheReadsPrice: 0.025,
	}
	routerDefault = core.ModelInfo{
		MaxTokens: 8192, ContextWindow: 200_000, SupportsImages: true, SupportsPromptCache: true,
		InputPrice: 3, OutputPrice: 15, CacheWritesPrice: 3.75, CacheReadsPrice: 0.3,
	}
)

type model struct {
	id   string
	info core.ModelInfo
}

// builtin lists each provider's models; the first entry is the default.
var builtin = map[settings.ProviderName][]model{
	settings.Anthropic: {
		{"claude-sonnet-4-20250514", claudeSonnet4},
		{"claude-opus-4-1-20250805", claudeOpus41},
		{"claude-3-7-sonnet-20250219", claudeSonnet37},
		{"claude-3-5-haiku-20241022", claudeHaiku35},
	},
	settings.ClaudeCode: {
		{"claude-sonnet-4-20250514", claudeSonnet4},
		{"claude-opus-4-1-20250805", claudeOpus41},
	},
	settings.Vertex: {
		{"gemini-2.5-flash", gemini25Flash},
		{"gemini-2.5-pro", gemini25Pro},
		{"claude-sonnet-4@20250514", claudeSonnet4},
		{"claude-opus-4-1@20250805", claudeOpus41},
		{"claude-3-7-sonnet@20250219", claudeSonnet37},
	},
	settings.Gemini: {
		{"gemini-2.5-flash", gemini25Flash},
		{"gemini-2.5-pro", gemini25Pro},
		{"gemini-2.0-flash-001", gemini20Flash},
	},
	settings.OpenAINative: {
		{"gpt-5-2025-08-07", core.ModelInfo{
			MaxTokens: 128_000, ContextWindow: 400_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
			InputPrice: 1.25, OutputPrice: 10, CacheReadsPrice: 0.125,
		}},
		{"gpt-5-mini-2025-08-07", core.ModelInfo{
			MaxTokens: 128_000, ContextWindow: 400_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
			InputPrice: 0.25, OutputPrice: 2, CacheReadsPrice: 0.025,
		}},
		{"gpt-4.1", core.ModelInfo{
			MaxTokens: 32_768, ContextWindow: 1_047_576, SupportsImages: true, SupportsPromptCache: true,
			InputPrice: 2, OutputPrice: 8, CacheReadsPrice: 0.5,
		}},
		{"o4-mini", core.ModelInfo{
			MaxTokens: 100_000, ContextWindow: 200_000, SupportsImages: true, SupportsPromptCache: true, SupportsReasoning: true,
			InputPrice: 1.1, OutputPrice: 4.4, CacheReadsPrice: 0.275,
		}},
	},
	settings.DeepSeek: {
		{"deepseek-chat", core.ModelInfo{
			MaxTokens: 8192, ContextWindow: 128_000, SupportsPromptCache: true,
			InputPrice: 0.27, OutputPrice: 1.1, CacheReadsPrice: 0.07,
		}},
		{"deepseek-reasoner", core.ModelInfo{
			MaxTokens: 65_536, ContextWindow: 128_000, SupportsPromptCache: true, SupportsReasoning: true,
			InputPrice: 0.55, OutputPrice: 2.19, CacheReadsPrice: 0.14,
		}},
	},
	settings.Mistral: {
		{"codestral-latest", core.ModelInfo{MaxTokens: 8192, ContextWindow: 256_000, InputPrice: 0.3, OutputPrice: 0.9}},
		{"mistral-large-latest", core.ModelInfo{MaxTokens: 8192, ContextWindow: 131_000, InputPrice: 2, OutputPrice: 6}},
	},
	settings.XAI: {
		{"grok-code-fast-1", core.ModelInfo{
			MaxTokens: 16_384, ContextWindow: 262_144, SupportsPromptCache: true, SupportsReasoning: true,
			InputPrice: 0.2, OutputPrice: 1.5, CacheReadsPrice: 0.02,
		}},
		{"grok-4", core.ModelInfo{MaxTokens: 8192, ContextWindow: 256_000, SupportsImages: true, InputPrice: 3, OutputPrice: 15}},
	},
	settings.Groq: {
		{"llama-3.3-70b-versatile", core.ModelInfo{MaxTokens: 32_768, ContextWindow: 131_072, InputPrice: 0.59, OutputPrice: 0.79}},
		{"moonshotai/kimi-k2-instruct", core.ModelInfo{MaxTokens: 16_384, ContextWindow: 131_072, InputPrice: 1, OutputPrice: 3}},
	},
	settings.Chutes: {
		{"deepseek-ai/DeepSeek-R1-0528", core.ModelInfo{MaxTokens: 32_768, ContextWindow: 163_840, SupportsReasoning: true}},
	},
	settings.Cerebras: {
		{"qwen-3-coder-480b", core.ModelInfo{MaxTokens: 40_000, ContextWindow: 131_072, InputPrice: 2, OutputPrice: 2}},
	},
	settings.SambaNova: {
		{"Meta-Llama-3.3-70B-Instruct", core.ModelInfo{MaxTokens: 8192, ContextWindow: 131_072, InputPrice: 0.6, OutputPrice: 1.2}},
	},
	settings.ZAI: {
		{"glm-4.5", core.ModelInfo{MaxTokens: 98_304, ContextWindow: 131_072, SupportsPromptCache: true, InputPrice: 0.6, OutputPrice: 2.2, CacheReadsPrice: 0.11}},
		{"glm-4.5-air", core.ModelInfo{MaxTokens: 98_304, ContextWindow: 131_072, SupportsPromptCache: true, InputPrice: 0.2, OutputPrice: 1.1, CacheReadsPrice: 0.03}},
	},
	settings.Fireworks: {
		{"accounts/fireworks/models/kimi-k2-instruct", core.ModelInfo{MaxTokens: 16_384, ContextWindow: 128_000, InputPrice: 0.6, OutputPrice: 2.5}},
	},
	settings.Featherless: {
		{"deepseek-ai/DeepSeek-V3-0324", core.ModelInfo{MaxTokens: 4096, ContextWindow: 32_678}},
	},
	settings.Moonshot: {
		{"kimi-k2-0711-preview", core.ModelInfo{MaxTokens: 32_000, ContextWindow: 131_072, SupportsPromptCache: true, InputPrice: 0.6, OutputPrice: 2.5, CacheReadsPrice: 0.15}},
	},
	settings.Doubao: {
		{"doubao-seed-1-6-250615", core.ModelInfo{MaxTokens: 32_768, ContextWindow: 128_000, SupportsImages: true, SupportsReasoning: true, InputPrice: 0.11, OutputPrice: 0.28}},
	},
	settings.QwenCode: {
		{"qwen3-coder-plus", core.ModelInfo{MaxTokens: 65_536, ContextWindow: 1_000_000}},
		{"qwen3-coder-flash", core.ModelInfo{MaxTokens: 65_536, ContextWindow: 1_000_000}},
	},
	settings.IOIntelligence: {
		{"meta-llama/Llama-4-Maverick-17B-128E-Instruct-FP8", core.ModelInfo{MaxTokens: 8192, ContextWindow: 430_000, SupportsImages: true}},
	},
	settings.Bedrock: {
		{"openai.gpt-oss-120b-1:0", core.ModelInfo{MaxTokens: 8192, ContextWindow: 128_000, SupportsReasoning: true, InputPrice: 0.15, OutputPrice: 0.6}},
		{"openai.gpt-oss-20b-1:0", core.ModelInfo{MaxTokens: 8192, ContextWindow: 128_000, SupportsReasoning: true, InputPrice: 0.07, OutputPrice: 0.3}},
	},
	settings.OpenAI: {
		{"gpt-4o", core.ModelInfo{MaxTokens: 16_384, ContextWindow: 128_000, SupportsImages: true, SupportsPromptCache: true, InputPrice: 2.5, OutputPrice: 10, CacheReadsPrice: 1.25}},
	},
	settings.OpenRouter:      {{"anthropic/claude-sonnet-4", claudeSonnet4}},
	settings.Glama:           {{"anthropic/claude-3-7-sonnet", routerDefault}},
	settings.Unbound:         {{"anthropic/claude-3-7-sonnet-20250219", routerDefault}},
	settings.Requesty:        {{"coding/claude-4-sonnet", claudeSonnet4}},
	settings.LiteLLM:         {{"claude-3-7-sonnet-20250219", routerDefault}},
	settings.VercelAIGateway: {{"anthropic/claude-sonnet-4", claudeSonnet4}},
	settings.Roo:             {{"xai/grok-code-fast-1", core.ModelInfo{MaxTokens: 16_384, ContextWindow: 262_144, SupportsPromptCache: true}}},
	settings.DeepInfra: {
		{"Qwen/Qwen3-Coder-480B-A35B-Instruct-Turbo", core.ModelInfo{MaxTokens: 16_384, ContextWindow: 262_144, SupportsPromptCache: true, InputPrice: 0.3, OutputPrice: 1.2}},
	},
	settings.HuggingFace: {
		{"meta-llama/Llama-3.3-70B-Instruct", core.ModelInfo{MaxTokens: 8192, ContextWindow: 131_072}},
	},
}

// localDefaults name a model for backends whose catalog is whatever the
// user has pulled or loaded; an unknown id gets core.DefaultModelInfo.
var localDefaults = map[settings.ProviderName]string{
	settings.Ollama:   "llama3.2",
	settings.LMStudio: "qwen/qwen3-coder-30b",
}

func init() {
	for provider, id := range localDefaults {
		SetDefault(string(provider), id)
	}
	for provider, list := range builtin {
		for i, m := range list {
			Register(string(provider), m.id, m.info)
			if i == 0 {
				SetDefault(string(provider), m.id)
			}
		}
	}
}
