// Package stac defines the catalog object model used by the converter:
// catalogs, collections, items, assets, links, and the typed property
// codec that all extension accessors are built on.
//
// Property values live in a loosely typed PropertyBag. The codec keeps
// the bag minimal: absent keys are the only representation of "no value",
// and writes of nil or empty sequences remove the key instead of storing
// a null. Serialized records therefore never carry explicit null entries
// for optional fields.
package stac
