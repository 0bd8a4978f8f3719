package vortc

// prelude is written before the globals of every emitted program.
// vort_print_num finds the fewest significant digits that read back to the
// same double and writes them in fixed notation, padding with zeros, as
// vortlang.FormatNumber does.
const prelude = `#include <stdio.h>
#include <stdlib.h>

static const char *vort_source = %s;

static double vort_div(double a, double b, int line, int column) {
	if (b == 0) {
		fprintf(stderr, "Runtime Error: division by zero\n  at %%s:(%%d, %%d)\n", vort_source, line, column);
		exit(1);
	}
	return a / b;
}

static void vort_print_num(double d) {
	char sci[64];
	char digits[32];
	int n = 0;
	const char *c;
	int point;

	if (d == 0) {
		fputs("0", stdout);
		return;
	}
	for (int prec = 1; prec <= 17; prec++) {
		snprintf(sci, sizeof sci, "%%.*e", prec - 1, d);
		if (strtod(sci, NULL) == d) {
			break;
		}
	}

	c = sci;
	if (*c == '-') {
		fputc('-', stdout);
		c++;
	}
	for (; *c != 'e'; c++) {
		if (*c != '.') {
			digits[n++] = *c;
		}
	}
	while (n > 1 && digits[n - 1] == '0') {
		n--;
	}
	point = atoi(c + 1) + 1;

	if (point <= 0) {
		fputs("0.", stdout);
		for (int i = 0; i < -point; i++) {
			fputc('0', stdout);
		}
		fwrite(digits, 1, n, stdout);
	} else if (point >= n) {
		fwrite(digits, 1, n, stdout);
		for (int i = n; i < point; i++) {
			fputc('0', stdout);
		}
	} else {
		fwrite(digits, 1, point, stdout);
		fputc('.', stdout);
		fwrite(digits + point, 1, n - point, stdout);
	}
}
`
