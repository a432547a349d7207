package domain

// Dice limits
const (
	MaxDiceCount  = 1000
	CriticalSides = 20
)

// Platform constants
const (
	PlatformTelegram = "telegram"
	PlatformDiscord  = "discord"
	PlatformHTTP     = "http"
)

// Command keywords understood by the chat front-ends
const (
	CommandRoll      = "/r"
	CommandRollLong  = "/rolar"
	CommandStart     = "/start"
	CommandList      = "/comandos"
	CommandListShort = "/c"
)

// Critical annotations
const (
	CriticalSuccessMessage = "🎯 CRÍTICO! Acerto Natural 20!"
	CriticalFailureMessage = "💀 FALHA CRÍTICA! 1 Natural!"
)

// Critical kinds, used for metric labels and API responses
const (
	CriticalNone    = "none"
	CriticalSuccess = "success"
	CriticalFailure = "failure"
)

// Canned replies for the non-roll commands
const (
	StartMessage = "Olá! Eu sou o assistente de RPG. 🎲\n" +
		"Use /r ou /rolar seguido de uma expressão para rolar dados, por exemplo /r 2d20m1+3.\n" +
		"Digite /comandos para ver todas as opções."

	CommandsMessage = "Comandos disponíveis:\n" +
		"/r ou /rolar <expressão> - rola dados\n" +
		"/comandos ou /c - mostra esta lista\n" +
		"/start - mensagem de boas-vindas\n\n" +
		"Expressões:\n" +
		"NdM - rola N dados de M lados (N até 1000, d20 = 1d20)\n" +
		"m<k> mantém os k maiores, mm<k> mantém os k menores\n" +
		"sM<k> solta os k maiores, sm<k> solta os k menores\n" +
		"+ - * / combinam termos da esquerda para a direita, sem precedência\n\n" +
		"Exemplos: /r 2d20m1, /r 4d6sm1, /r 1d8+3*2"
)
