// Package fuzztests houses Go fuzz harnesses for the OCL front-end
// (source -> lexer -> parser -> resolver -> checker). They guard against
// panics, hangs and broken diagnostic ordering on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через весь пайплайн,
// проверяя инварианты спанов и диагностик.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
