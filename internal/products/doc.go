// Package products is a small catalog reader assembled entirely by the
// resolver. ProductService reads a CSV file through FileReader and turns each
// record into a Product with ProductParser; none of the three constructs the
// others.
package products
