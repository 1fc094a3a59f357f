// Package services contains the stateless domain services of the dispatch
// engine: the pricing engine that quotes itemized delivery prices, the
// allocation engine that picks the best courier for an order, and the
// performance calculator that recomputes courier scores from history.
//
// All three are pure over their inputs. Persistence, claiming and event
// publication belong to the application layer.
package services
