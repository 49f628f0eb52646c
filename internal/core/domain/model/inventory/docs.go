// Package inventory models the physical stock-holding side of the engine:
// the Inventory aggregate (warehouses, vans, local stores), the StockRow
// entity that tracks available and reserved quantities per product, and the
// Movement entity describing planned or completed relocations of stock.
//
// Movements distinguish inventory endpoints from client deliveries with an
// explicit Endpoint union instead of a nullable reference, so the
// "destination is the customer" case is a checked variant rather than a nil.
package inventory
