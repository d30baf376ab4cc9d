// Package risk turns a normalized audit report into a short yes/no
// interrogation about how the project uses its vulnerable packages, and
// scores the answers.
//
// Advisory text for each vulnerable package is fetched through a [Source]
// and matched against three keyword vectors (network, cookie/session,
// console/script). Each matched vector contributes one base question;
// risky answers unlock follow-ups. A [Session] asks them forward-only.
//
// Scoring:
//
//	classic = positives / (positives + negatives) * 100
//	strict  = (classic + weight(severity) * 100) / 2
//
// where weight is 1, 0.75, 0.5 and 0.25 for critical, high, moderate and low.
package risk
