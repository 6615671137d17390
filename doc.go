// Package strata contains the core components of Strata, a framework for transforming nested
// documents. This root package defines types which are employed during the regular use of
// the framework, as well as in the extension of the framework, and is an excellent overview of
// Strata's key concepts.
package strata
