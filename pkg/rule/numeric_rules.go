package rule

// Numeric rules compare leading integers: "12abc" counts as 12.

func between(in Input) Result {
	n := in.Int()
	return Check(in.IntArg(0) <= n && n <= in.IntArg(1))
}

func minimum(in Input) Result {
	return Check(in.Int() >= in.IntArg(0))
}

func maximum(in Input) Result {
	return Check(in.Int() <= in.IntArg(0))
}
