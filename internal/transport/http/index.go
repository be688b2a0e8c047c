package httpserver

const indexHTML = `<!doctype html>
<html>
<head>
    <meta charset="utf-8">
    <title>Load profile</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<h1>Load profile</h1>
<form action="/chart" method="get">
    <label>From <input name="from" placeholder="20240801T000000"></label>
    <label>To <input name="to" placeholder="20240901T000000"></label>
    <select name="format">
        <option value="html">HTML</option>
        <option value="xlsx">XLSX</option>
        <option value="pdf">PDF</option>
    </select>
    <button type="submit">Chart</button>
</form>
<form action="/api/profile" method="get">
    <label>From <input name="from" placeholder="20240801T000000"></label>
    <label>To <input name="to" placeholder="20240901T000000"></label>
    <label>Range <input name="range" placeholder="07:00-17:00"></label>
    <button type="submit">Report</button>
</form>
</body>
</html>
`
