// Package fuzztests houses Go fuzz harnesses for the tsxlower pipeline
// (source -> lexer -> parser -> lower -> print). They guard against panics,
// hangs and markup surviving the lowering pass on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер, lowering и принтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/lower,
// internal/format, internal/testkit.
package fuzztests
