// Package audit normalizes the human-oriented reports of `npm audit`,
// `pnpm audit` and `yarn audit` into one [Report].
//
// npm prints plain text blocks, pnpm and yarn print box-drawn tables. Each
// format has a [Parser]; [ParserFor] selects it by package manager and
// [Normalize] adds the exit-code check that keeps an unreadable failing
// audit from passing as clean:
//
//	report, err := audit.Normalize(deps.ManagerPnpm, output, exitCode)
//	if errors.Is(err, errors.ErrCodeAuditInconclusive) {
//	    // the audit failed and nothing could be read from it
//	}
//
// The aggregate [Report.Risk] is the highest severity present.
package audit
