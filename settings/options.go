package settings

import (
	"maps"

	"github.com/petal-labs/prism/core"
)

// ModelSelector picks a host-provided language model.
type ModelSelector struct {
	Vendor  string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Options is the superset of every provider's fields. Each adapter reads
// only the fields it knows about.
type Options struct {
	// Shared model settings.
	APIModelID             string   `json:"apiModelId,omitempty" yaml:"apiModelId,omitempty"`
	ModelMaxTokens         int      `json:"modelMaxTokens,omitempty" yaml:"modelMaxTokens,omitempty"`
	ModelMaxThinkingTokens int      `json:"modelMaxThinkingTokens,omitempty" yaml:"modelMaxThinkingTokens,omitempty"`
	ModelTemperature       *float64 `json:"modelTemperature,omitempty" yaml:"modelTemperature,omitempty"`
	ReasoningEffort        string   `json:"reasoningEffort,omitempty" yaml:"reasoningEffort,omitempty"`

	// anthropic
	APIKey                    string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	AnthropicBaseURL          string `json:"anthropicBaseUrl,omitempty" yaml:"anthropicBaseUrl,omitempty"`
	AnthropicUseAuthToken     bool   `json:"anthropicUseAuthToken,omitempty" yaml:"anthropicUseAuthToken,omitempty"`
	AnthropicBeta1MContext    bool   `json:"anthropicBeta1MContext,omitempty" yaml:"anthropicBeta1MContext,omitempty"`
	AnthropicConfigUseEnvVars bool   `json:"anthropicConfigUseEnvVars,omitempty" yaml:"anthropicConfigUseEnvVars,omitempty"`

	// claude-code
	ClaudeCodePath            string `json:"claudeCodePath,omitempty" yaml:"claudeCodePath,omitempty"`
	ClaudeCodeMaxOutputTokens int    `json:"claudeCodeMaxOutputTokens,omitempty" yaml:"claudeCodeMaxOutputTokens,omitempty"`

	// glama
	GlamaModelID          string `json:"glamaModelId,omitempty" yaml:"glamaModelId,omitempty"`
	GlamaAPIKey           string `json:"glamaApiKey,omitempty" yaml:"glamaApiKey,omitempty"`
	GlamaConfigUseEnvVars bool   `json:"glamaConfigUseEnvVars,omitempty" yaml:"glamaConfigUseEnvVars,omitempty"`

	// openrouter
	OpenRouterAPIKey           string `json:"openRouterApiKey,omitempty" yaml:"openRouterApiKey,omitempty"`
	OpenRouterModelID          string `json:"openRouterModelId,omitempty" yaml:"openRouterModelId,omitempty"`
	OpenRouterBaseURL          string `json:"openRouterBaseUrl,omitempty" yaml:"openRouterBaseUrl,omitempty"`
	OpenRouterSpecificProvider string `json:"openRouterSpecificProvider,omitempty" yaml:"openRouterSpecificProvider,omitempty"`
	OpenRouterConfigUseEnvVars bool   `json:"openRouterConfigUseEnvVars,omitempty" yaml:"openRouterConfigUseEnvVars,omitempty"`

	// bedrock
	AWSAPIKey         string `json:"awsApiKey,omitempty" yaml:"awsApiKey,omitempty"`
	AWSRegion         string `json:"awsRegion,omitempty" yaml:"awsRegion,omitempty"`
	AWSBedrockURL     string `json:"awsBedrockEndpoint,omitempty" yaml:"awsBedrockEndpoint,omitempty"`
	AWSUseCrossRegion bool   `json:"awsUseCrossRegionInference,omitempty" yaml:"awsUseCrossRegionInference,omitempty"`

	// vertex
	VertexKeyFile         string `json:"vertexKeyFile,omitempty" yaml:"vertexKeyFile,omitempty"`
	VertexJSONCredentials string `json:"vertexJsonCredentials,omitempty" yaml:"vertexJsonCredentials,omitempty"`
	VertexProjectID       string `json:"vertexProjectId,omitempty" yaml:"vertexProjectId,omitempty"`
	VertexRegion          string `json:"vertexRegion,omitempty" yaml:"vertexRegion,omitempty"`

	// openai (compatible endpoints)
	OpenAIBaseURL          string            `json:"openAiBaseUrl,omitempty" yaml:"openAiBaseUrl,omitempty"`
	OpenAIAPIKey           string            `json:"openAiApiKey,omitempty" yaml:"openAiApiKey,omitempty"`
	OpenAIModelID          string            `json:"openAiModelId,omitempty" yaml:"openAiModelId,omitempty"`
	OpenAICustomModelInfo  *core.ModelInfo   `json:"openAiCustomModelInfo,omitempty" yaml:"openAiCustomModelInfo,omitempty"`
	OpenAIUseAzure         bool              `json:"openAiUseAzure,omitempty" yaml:"openAiUseAzure,omitempty"`
	AzureAPIVersion        string            `json:"azureApiVersion,omitempty" yaml:"azureApiVersion,omitempty"`
	OpenAIStreamingEnabled *bool             `json:"openAiStreamingEnabled,omitempty" yaml:"openAiStreamingEnabled,omitempty"`
	OpenAIHeaders          map[string]string `json:"openAiHeaders,omitempty" yaml:"openAiHeaders,omitempty"`
	OpenAIConfigUseEnvVars bool              `json:"openAiConfigUseEnvVars,omitempty" yaml:"openAiConfigUseEnvVars,omitempty"`

	// ollama
	OllamaModelID string `json:"ollamaModelId,omitempty" yaml:"ollamaModelId,omitempty"`
	OllamaBaseURL string `json:"ollamaBaseUrl,omitempty" yaml:"ollamaBaseUrl,omitempty"`
	OllamaAPIKey  string `json:"ollamaApiKey,omitempty" yaml:"ollamaApiKey,omitempty"`

	// lmstudio
	LMStudioModelID string `json:"lmStudioModelId,omitempty" yaml:"lmStudioModelId,omitempty"`
	LMStudioBaseURL string `json:"lmStudioBaseUrl,omitempty" yaml:"lmStudioBaseUrl,omitempty"`

	// gemini
	GeminiAPIKey           string `json:"geminiApiKey,omitempty" yaml:"geminiApiKey,omitempty"`
	GoogleGeminiBaseURL    string `json:"googleGeminiBaseUrl,omitempty" yaml:"googleGeminiBaseUrl,omitempty"`
	GeminiConfigUseEnvVars bool   `json:"geminiConfigUseEnvVars,omitempty" yaml:"geminiConfigUseEnvVars,omitempty"`

	// openai-native
	OpenAINativeAPIKey           string `json:"openAiNativeApiKey,omitempty" yaml:"openAiNativeApiKey,omitempty"`
	OpenAINativeBaseURL          string `json:"openAiNativeBaseUrl,omitempty" yaml:"openAiNativeBaseUrl,omitempty"`
	OpenAINativeServiceTier      string `json:"openAiNativeServiceTier,omitempty" yaml:"openAiNativeServiceTier,omitempty"`
	OpenAINativeConfigUseEnvVars bool   `json:"openAiNativeConfigUseEnvVars,omitempty" yaml:"openAiNativeConfigUseEnvVars,omitempty"`

	// mistral
	MistralAPIKey           string `json:"mistralApiKey,omitempty" yaml:"mistralApiKey,omitempty"`
	MistralCodestralURL     string `json:"mistralCodestralUrl,omitempty" yaml:"mistralCodestralUrl,omitempty"`
	MistralConfigUseEnvVars bool   `json:"mistralConfigUseEnvVars,omitempty" yaml:"mistralConfigUseEnvVars,omitempty"`

	// deepseek
	DeepSeekBaseURL          string `json:"deepSeekBaseUrl,omitempty" yaml:"deepSeekBaseUrl,omitempty"`
	DeepSeekAPIKey           string `json:"deepSeekApiKey,omitempty" yaml:"deepSeekApiKey,omitempty"`
	DeepSeekConfigUseEnvVars bool   `json:"deepSeekConfigUseEnvVars,omitempty" yaml:"deepSeekConfigUseEnvVars,omitempty"`

	// doubao
	DoubaoBaseURL          string `json:"doubaoBaseUrl,omitempty" yaml:"doubaoBaseUrl,omitempty"`
	DoubaoAPIKey           string `json:"doubaoApiKey,omitempty" yaml:"doubaoApiKey,omitempty"`
	DoubaoConfigUseEnvVars bool   `json:"doubaoConfigUseEnvVars,omitempty" yaml:"doubaoConfigUseEnvVars,omitempty"`

	// moonshot
	MoonshotBaseURL          string `json:"moonshotBaseUrl,omitempty" yaml:"moonshotBaseUrl,omitempty"`
	MoonshotAPIKey           string `json:"moonshotApiKey,omitempty" yaml:"moonshotApiKey,omitempty"`
	MoonshotConfigUseEnvVars bool   `json:"moonshotConfigUseEnvVars,omitempty" yaml:"moonshotConfigUseEnvVars,omitempty"`

	// qwen-code
	QwenCodeOAuthPath string `json:"qwenCodeOauthPath,omitempty" yaml:"qwenCodeOauthPath,omitempty"`

	// vscode-lm
	VSCodeLMModelSelector *ModelSelector `json:"vsCodeLmModelSelector,omitempty" yaml:"vsCodeLmModelSelector,omitempty"`

	// unbound
	UnboundAPIKey           string `json:"unboundApiKey,omitempty" yaml:"unboundApiKey,omitempty"`
	UnboundModelID          string `json:"unboundModelId,omitempty" yaml:"unboundModelId,omitempty"`
	UnboundConfigUseEnvVars bool   `json:"unboundConfigUseEnvVars,omitempty" yaml:"unboundConfigUseEnvVars,omitempty"`

	// requesty
	RequestyAPIKey           string `json:"requestyApiKey,omitempty" yaml:"requestyApiKey,omitempty"`
	RequestyBaseURL          string `json:"requestyBaseUrl,omitempty" yaml:"requestyBaseUrl,omitempty"`
	RequestyModelID          string `json:"requestyModelId,omitempty" yaml:"requestyModelId,omitempty"`
	RequestyConfigUseEnvVars bool   `json:"requestyConfigUseEnvVars,omitempty" yaml:"requestyConfigUseEnvVars,omitempty"`

	// fake-ai delegates to an in-process handler supplied by the caller.
	FakeAI core.Handler `json:"-" yaml:"-"`

	// xai
	XAIAPIKey           string `json:"xaiApiKey,omitempty" yaml:"xaiApiKey,omitempty"`
	XAIConfigUseEnvVars bool   `json:"xaiConfigUseEnvVars,omitempty" yaml:"xaiConfigUseEnvVars,omitempty"`

	// groq
	GroqAPIKey           string `json:"groqApiKey,omitempty" yaml:"groqApiKey,omitempty"`
	GroqConfigUseEnvVars bool   `json:"groqConfigUseEnvVars,omitempty" yaml:"groqConfigUseEnvVars,omitempty"`

	// deepinfra
	DeepInfraAPIKey           string `json:"deepInfraApiKey,omitempty" yaml:"deepInfraApiKey,omitempty"`
	DeepInfraBaseURL          string `json:"deepInfraBaseUrl,omitempty" yaml:"deepInfraBaseUrl,omitempty"`
	DeepInfraModelID          string `json:"deepInfraModelId,omitempty" yaml:"deepInfraModelId,omitempty"`
	DeepInfraConfigUseEnvVars bool   `json:"deepInfraConfigUseEnvVars,omitempty" yaml:"deepInfraConfigUseEnvVars,omitempty"`

	// huggingface
	HuggingFaceAPIKey            string `json:"huggingFaceApiKey,omitempty" yaml:"huggingFaceApiKey,omitempty"`
	HuggingFaceModelID           string `json:"huggingFaceModelId,omitempty" yaml:"huggingFaceModelId,omitempty"`
	HuggingFaceInferenceProvider string `json:"huggingFaceInferenceProvider,omitempty" yaml:"huggingFaceInferenceProvider,omitempty"`
	HuggingFaceConfigUseEnvVars  bool   `json:"huggingFaceConfigUseEnvVars,omitempty" yaml:"huggingFaceConfigUseEnvVars,omitempty"`

	// chutes
	ChutesAPIKey           string `json:"chutesApiKey,omitempty" yaml:"chutesApiKey,omitempty"`
	ChutesConfigUseEnvVars bool   `json:"chutesConfigUseEnvVars,omitempty" yaml:"chutesConfigUseEnvVars,omitempty"`

	// litellm
	LiteLLMBaseURL          string `json:"litellmBaseUrl,omitempty" yaml:"litellmBaseUrl,omitempty"`
	LiteLLMAPIKey           string `json:"litellmApiKey,omitempty" yaml:"litellmApiKey,omitempty"`
	LiteLLMModelID          string `json:"litellmModelId,omitempty" yaml:"litellmModelId,omitempty"`
	LiteLLMUsePromptCache   bool   `json:"litellmUsePromptCache,omitempty" yaml:"litellmUsePromptCache,omitempty"`
	LiteLLMConfigUseEnvVars bool   `json:"litellmConfigUseEnvVars,omitempty" yaml:"litellmConfigUseEnvVars,omitempty"`

	// cerebras
	CerebrasAPIKey           string `json:"cerebrasApiKey,omitempty" yaml:"cerebrasApiKey,omitempty"`
	CerebrasConfigUseEnvVars bool   `json:"cerebrasConfigUseEnvVars,omitempty" yaml:"cerebrasConfigUseEnvVars,omitempty"`

	// sambanova
	SambaNovaAPIKey           string `json:"sambaNovaApiKey,omitempty" yaml:"sambaNovaApiKey,omitempty"`
	SambaNovaConfigUseEnvVars bool   `json:"sambaNovaConfigUseEnvVars,omitempty" yaml:"sambaNovaConfigUseEnvVars,omitempty"`

	// zai
	ZAIAPIKey           string `json:"zaiApiKey,omitempty" yaml:"zaiApiKey,omitempty"`
	ZAIAPILine          string `json:"zaiApiLine,omitempty" yaml:"zaiApiLine,omitempty"`
	ZAIConfigUseEnvVars bool   `json:"zaiConfigUseEnvVars,omitempty" yaml:"zaiConfigUseEnvVars,omitempty"`

	// fireworks
	FireworksAPIKey           string `json:"fireworksApiKey,omitempty" yaml:"fireworksApiKey,omitempty"`
	FireworksConfigUseEnvVars bool   `json:"fireworksConfigUseEnvVars,omitempty" yaml:"fireworksConfigUseEnvVars,omitempty"`

	// io-intelligence
	IOIntelligenceAPIKey           string `json:"ioIntelligenceApiKey,omitempty" yaml:"ioIntelligenceApiKey,omitempty"`
	IOIntelligenceModelID          string `json:"ioIntelligenceModelId,omitempty" yaml:"ioIntelligenceModelId,omitempty"`
	IOIntelligenceConfigUseEnvVars bool   `json:"ioIntelligenceConfigUseEnvVars,omitempty" yaml:"ioIntelligenceConfigUseEnvVars,omitempty"`

	// roo
	RooSessionToken string `json:"rooSessionToken,omitempty" yaml:"rooSessionToken,omitempty"`
	RooBaseURL      string `json:"rooBaseUrl,omitempty" yaml:"rooBaseUrl,omitempty"`

	// featherless
	FeatherlessAPIKey           string `json:"featherlessApiKey,omitempty" yaml:"featherlessApiKey,omitempty"`
	FeatherlessConfigUseEnvVars bool   `json:"featherlessConfigUseEnvVars,omitempty" yaml:"featherlessConfigUseEnvVars,omitempty"`

	// vercel-ai-gateway
	VercelAIGatewayAPIKey  string `json:"vercelAiGatewayApiKey,omitempty" yaml:"vercelAiGatewayApiKey,omitempty"`
	VercelAIGatewayModelID string `json:"vercelAiGatewayModelId,omitempty" yaml:"vercelAiGatewayModelId,omitempty"`
	VercelConfigUseEnvVars bool   `json:"vercelConfigUseEnvVars,omitempty" yaml:"vercelConfigUseEnvVars,omitempty"`
}

// Clone returns a deep copy. The FakeAI handler is shared, not copied.
func (o Options) Clone() Options {
	c := o
	if o.ModelTemperature != nil {
		t := *o.ModelTemperature
		c.ModelTemperature = &t
	}
	if o.OpenAICustomModelInfo != nil {
		info := *o.OpenAICustomModelInfo
		c.OpenAICustomModelInfo = &info
	}
	if o.OpenAIStreamingEnabled != nil {
		b := *o.OpenAIStreamingEnabled
		c.OpenAIStreamingEnabled = &b
	}
	if o.OpenAIHeaders != nil {
		c.OpenAIHeaders = maps.Clone(o.OpenAIHeaders)
	}
	if o.VSCodeLMModelSelector != nil {
		sel := *o.VSCodeLMModelSelector
		c.VSCodeLMModelSelector = &sel
	}
	return c
}
