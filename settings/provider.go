package settings

// ProviderName tags which backend a configuration targets.
type ProviderName string

const (
	Anthropic       ProviderName = "anthropic"
	ClaudeCode      ProviderName = "claude-code"
	Glama           ProviderName = "glama"
	OpenRouter      ProviderName = "openrouter"
	Bedrock         ProviderName = "bedrock"
	Vertex          ProviderName = "vertex"
	OpenAI          ProviderName = "openai"
	Ollama          ProviderName = "ollama"
	LMStudio        ProviderName = "lmstudio"
	Gemini          ProviderName = "gemini"
	OpenAINative    ProviderName = "openai-native"
	DeepSeek        ProviderName = "deepseek"
	Doubao          ProviderName = "doubao"
	QwenCode        ProviderName = "qwen-code"
	Moonshot        ProviderName = "moonshot"
	VSCodeLM        ProviderName = "vscode-lm"
	Mistral         ProviderName = "mistral"
	Unbound         ProviderName = "unbound"
	Requesty        ProviderName = "requesty"
	HumanRelay      ProviderName = "human-relay"
	FakeAI          ProviderName = "fake-ai"
	XAI             ProviderName = "xai"
	Groq            ProviderName = "groq"
	DeepInfra       ProviderName = "deepinfra"
	HuggingFace     ProviderName = "huggingface"
	Chutes          ProviderName = "chutes"
	LiteLLM         ProviderName = "litellm"
	Cerebras        ProviderName = "cerebras"
	SambaNova       ProviderName = "sambanova"
	ZAI             ProviderName = "zai"
	Fireworks       ProviderName = "fireworks"
	IOIntelligence  ProviderName = "io-intelligence"
	Roo             ProviderName = "roo"
	Featherless     ProviderName = "featherless"
	VercelAIGateway ProviderName = "vercel-ai-gateway"

	// GeminiCLI is accepted in stored settings but has no dedicated adapter.
	GeminiCLI ProviderName = "gemini-cli"
)

// DefaultProvider is used when the tag is empty or unrecognised.
const DefaultProvider = Anthropic

// Known lists every tag with a dedicated adapter.
var Known = []ProviderName{
	Anthropic, ClaudeCode, Glama, OpenRouter, Bedrock, Vertex, OpenAI, Ollama,
	LMStudio, Gemini, OpenAINative, DeepSeek, Doubao, QwenCode, Moonshot,
	VSCodeLM, Mistral, Unbound, Requesty, HumanRelay, FakeAI, XAI, Groq,
	DeepInfra, HuggingFace, Chutes, LiteLLM, Cerebras, SambaNova, ZAI,
	Fireworks, IOIntelligence, Roo, Featherless, VercelAIGateway,
}
