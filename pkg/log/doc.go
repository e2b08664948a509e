/*
Package log provides structured logging for ironforged using zerolog.

Initialize once at process start with Init, then use the package-level
helpers or derive a context logger with WithComponent / WithApplicationID
so every subsequent log line carries that field without repeating it.

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})
	appLog := log.WithApplicationID(id.String())
	appLog.Info().Str("program", cmd.Program).Msg("application starting")
*/
package log
