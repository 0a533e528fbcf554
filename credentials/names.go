package credentials

// Canonical environment variable names, one per provider credential.
// These names are authoritative for both handler construction and the
// settings UI; several providers intentionally share OpenAIAPIKey.
const (
	AnthropicAPIKey      = "ANTHROPIC_API_KEY"
	OpenAIAPIKey         = "OPENAI_API_KEY"
	OpenRouterAPIKey     = "OPEN_ROUTER_API_KEY"
	GlamaAPIKey          = "GLAMA_API_KEY"
	GeminiAPIKey         = "GEMINI_API_KEY"
	MistralAPIKey        = "MISTRAL_API_KEY"
	DeepSeekAPIKey       = "DEEP_SEEK_API_KEY"
	UnboundAPIKey        = "UNBOUND_API_KEY"
	RequestyAPIKey       = "REQUESTY_API_KEY"
	XAIAPIKey            = "XAI_API_KEY"
	GroqAPIKey           = "GROQ_API_KEY"
	ChutesAPIKey         = "CHUTES_API_KEY"
	LiteLLMAPIKey        = "LITELLM_API_KEY"
	DoubaoAPIKey         = "DOUBAO_API_KEY"
	MoonshotAPIKey       = "MOONSHOT_API_KEY"
	DeepInfraAPIKey      = "DEEPINFRA_API_KEY"
	HuggingFaceAPIKey    = "HUGGINGFACE_API_KEY"
	CerebrasAPIKey       = "CEREBRAS_API_KEY"
	SambaNovaAPIKey      = "SAMBANOVA_API_KEY"
	ZAIAPIKey            = "ZAI_API_KEY"
	FireworksAPIKey      = "FIREWORKS_API_KEY"
	IOIntelligenceAPIKey = "IOINTELLIGENCE_API_KEY"
	FeatherlessAPIKey    = "FEATHERLESS_API_KEY"
	VercelAPIKey         = "VERCEL_API_KEY"
)

// Canonical lists every distinct canonical name.
var Canonical = []string{
	AnthropicAPIKey,
	OpenAIAPIKey,
	OpenRouterAPIKey,
	GlamaAPIKey,
	GeminiAPIKey,
	MistralAPIKey,
	DeepSeekAPIKey,
	UnboundAPIKey,
	RequestyAPIKey,
	XAIAPIKey,
	GroqAPIKey,
	ChutesAPIKey,
	LiteLLMAPIKey,
	DoubaoAPIKey,
	MoonshotAPIKey,
	DeepInfraAPIKey,
	HuggingFaceAPIKey,
	CerebrasAPIKey,
	SambaNovaAPIKey,
	ZAIAPIKey,
	FireworksAPIKey,
	IOIntelligenceAPIKey,
	FeatherlessAPIKey,
	VercelAPIKey,
}
