/*
Package template provides reusable reactor layouts that host a bond subgraph.

WellMixedTank is the classic artificial chemistry reactor: a tank is loaded
once, then each generation repeatedly samples a few particles, lets the bond
subgraph react them and collects the products, until the generation's
reaction budget is spent or the tank runs dry. Products return to the tank
between generations.
*/
package template
