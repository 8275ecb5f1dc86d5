// Package providers holds the adapters that fetch articles from third-party
// news APIs. Each subpackage implements [driven.Provider] for one API and
// maps its payload onto [domain.Article].
//
// Adapters are constructed from an explicit Config; none of them read the
// environment.
package providers
