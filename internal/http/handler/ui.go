package handler

import "github.com/gofiber/fiber/v2"

// CalculatorUI serves the embedded single-page calculator. The page is a
// small static form that drives the /calculations API, so the container
// ships a usable tool without any separate frontend build.
func CalculatorUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(calculatorPage)
	}
}

const calculatorPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>EMI and Amortization Calculator</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
    label { display: block; margin-top: .75rem; }
    input, select { padding: .3rem; width: 12rem; }
    button { margin-top: 1rem; padding: .5rem 1.5rem; }
    #summary { margin-top: 1rem; font-weight: bold; white-space: pre-line; }
    #error { margin-top: 1rem; color: #b00020; }
    table { border-collapse: collapse; margin-top: 1rem; width: 100%; }
    th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: right; }
    th { background: #f0f0f0; }
  </style>
</head>
<body>
  <h2>EMI and Amortization Calculator</h2>
  <p>Choose whether to calculate the EMI or the loan tenure.</p>

  <label>Calculation Type
    <select id="mode">
      <option value="emi">Calculate EMI</option>
      <option value="tenure">Calculate Tenure</option>
    </select>
  </label>
  <label>Loan Amount <input type="number" id="principal" value="500000" /></label>
  <label>Annual Interest Rate (%) <input type="number" id="rate" value="8.5" step="0.1" /></label>
  <label id="tenure-row">Tenure (Years) <input type="number" id="tenure" value="5" min="1" max="40" /></label>
  <label id="emi-row" style="display:none">Fixed Monthly EMI <input type="number" id="emi" /></label>

  <button id="calculate">Calculate</button>
  <div id="summary"></div>
  <div id="error"></div>
  <div id="schedule"></div>

  <script>
    const modeEl = document.getElementById('mode');
    modeEl.addEventListener('change', () => {
      const emiMode = modeEl.value === 'emi';
      document.getElementById('tenure-row').style.display = emiMode ? '' : 'none';
      document.getElementById('emi-row').style.display = emiMode ? 'none' : '';
    });

    document.getElementById('calculate').addEventListener('click', async () => {
      const body = {
        mode: modeEl.value,
        principal: parseFloat(document.getElementById('principal').value),
        annual_rate: parseFloat(document.getElementById('rate').value),
        tenure_years: parseInt(document.getElementById('tenure').value, 10),
        emi: parseFloat(document.getElementById('emi').value) || 0
      };
      document.getElementById('error').textContent = '';
      document.getElementById('summary').textContent = '';
      document.getElementById('schedule').innerHTML = '';

      const resp = await fetch('/calculations', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
      });
      const data = await resp.json();
      if (!resp.ok) {
        document.getElementById('error').textContent = data.error ? data.error.message : 'request failed';
        return;
      }

      document.getElementById('summary').textContent = data.summary;

      const rows = data.schedule.map(r =>
        '<tr><td>' + r.month + '</td><td>' + r.payment.toFixed(2) +
        '</td><td>' + r.principal_paid.toFixed(2) + '</td><td>' + r.interest_paid.toFixed(2) +
        '</td><td>' + r.balance.toFixed(2) + '</td></tr>').join('');
      document.getElementById('schedule').innerHTML =
        '<table><tr><th>Month</th><th>EMI</th><th>Principal Paid</th>' +
        '<th>Interest Paid</th><th>Remaining Balance</th></tr>' + rows + '</table>';
    });
  </script>
</body>
</html>`
