// Package main kpidash 命令行入口。
//
// Usage:
//
//	kpidash serve
//	kpidash render --input kpis.xlsx --company "Acme Corp" --format xlsx,pdf
//	kpidash classify --actual 95 --benchmark 100
package main

func main() {
	Execute()
}
