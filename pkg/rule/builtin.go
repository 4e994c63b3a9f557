package rule

func registerBuiltins(r *Registry) {
	r.Define(Required, required, CheckBlank())

	r.Define("between", between)
	r.Define("min", minimum)
	r.Define("max", maximum)

	r.Define("length", length)
	r.Define("minlength", minLength)
	r.Define("maxlength", maxLength)

	r.Define("regex", regex)
	r.Define("int", matchPattern(intPattern))
	r.Define("natural", matchPattern(naturalPattern))
	r.Define("decimal", matchPattern(decimalPattern))
	r.Define("alpha", matchPattern(alphaPattern))
	r.Define("alpha_num", matchPattern(alphaNumPattern))
	r.Define("alpha_dash", matchPattern(alphaDashPattern))
	r.Define("kana", matchPattern(kanaPattern))
	r.Define("url", matchPattern(urlPattern))
	r.Define("email", matchPattern(emailPattern))

	r.Define("date", dateRule(Date))
	r.Define("datehm", dateRule(DateHM))
	r.Define("datetime", dateRule(DateTime))
	r.Define("past", past)
	r.Define("future", future)

	r.Define("match", match)
	r.Define("in_array", inArray)
	r.Define(InOptions, inOptions)
}
