package web

// getDashboardHTML возвращает встроенную страницу анализатора.
// Вся интерактивность - на ванильном JS поверх JSON API
func getDashboardHTML() string {
	return `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>🔒 Akamai Security Configuration Analyzer</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: #333; min-height: 100vh;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 2rem; }
        .header { text-align: center; margin-bottom: 2.5rem; }
        .header h1 { color: white; font-size: 2.5rem; margin-bottom: 1rem; text-shadow: 2px 2px 4px rgba(0,0,0,0.3); }
        .header p { color: rgba(255,255,255,0.9); font-size: 1.1rem; }

        .grid { display: grid; grid-template-columns: 340px 1fr; gap: 1.5rem; }

        .card {
            background: rgba(255,255,255,0.95); border-radius: 15px;
            box-shadow: 0 8px 32px rgba(0,0,0,0.1); backdrop-filter: blur(10px);
            overflow: hidden; margin-bottom: 1.5rem;
        }
        .card-header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white; padding: 1rem 1.5rem; font-size: 1.1rem; font-weight: 600;
        }
        .card-body { padding: 1.5rem; }

        label { display: block; margin: 0.8rem 0 0.3rem; font-weight: 600; color: #2c3e50; }
        select, input[type=password], input[type=text], input[type=file] {
            width: 100%; padding: 0.6rem; border: 1px solid #ddd; border-radius: 8px; font-size: 0.95rem;
        }

        .rule-item {
            background: #f8f9fa; padding: 0.6rem 0.8rem; margin: 0.4rem 0;
            border-radius: 8px; border-left: 4px solid #3498db; font-size: 0.9rem;
            display: flex; justify-content: space-between; align-items: center;
        }
        .rule-item.custom { border-left-color: #e67e22; }
        .rule-remove {
            background: #e74c3c; color: white; border: none; border-radius: 6px;
            padding: 0.2rem 0.6rem; cursor: pointer; margin-left: 0.8rem;
        }
        .rule-add-row { display: flex; gap: 0.5rem; margin-top: 0.8rem; }
        .rule-add-row input { flex: 1; }

        .btn {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white; border: none; padding: 0.8rem 1.5rem; border-radius: 25px;
            cursor: pointer; font-size: 1rem; transition: transform 0.2s ease;
        }
        .btn:hover:not(:disabled) { transform: scale(1.03); }
        .btn:disabled { opacity: 0.5; cursor: not-allowed; }
        .btn-block { width: 100%; margin-top: 1.2rem; }

        .status { padding: 0.8rem 1.5rem; font-size: 0.9rem; color: #666; }
        .status.error { color: #e74c3c; font-weight: 600; }
        .status.busy { color: #f39c12; }

        .result {
            white-space: pre-wrap; font-family: 'Consolas', monospace; font-size: 0.9rem;
            background: #f8f9fa; padding: 1.2rem; border-radius: 8px; border-left: 4px solid #27ae60;
        }
        .no-data { text-align: center; padding: 2rem; color: #999; }

        .stats-row { display: flex; gap: 1rem; padding: 0 1.5rem 1.5rem; }
        .stat { flex: 1; text-align: center; }
        .stat-number { font-size: 1.6rem; font-weight: bold; color: #667eea; }
        .stat-label { color: #666; font-size: 0.75rem; text-transform: uppercase; letter-spacing: 1px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🔒 Akamai Security Configuration Analyzer</h1>
            <p>AI-анализ конфигураций Akamai по правилам безопасности</p>
        </div>

        <div class="grid">
            <div>
                <div class="card">
                    <div class="card-header">🔧 Настройки</div>
                    <div class="card-body">
                        <label for="model">Языковая модель</label>
                        <select id="model">
                            <option value="gpt-4">gpt-4</option>
                            <option value="gemini-pro">gemini-pro</option>
                        </select>

                        <label for="apiKey">API ключ</label>
                        <input type="password" id="apiKey" placeholder="Ключ выбранной модели">

                        <label for="configFile">Конфигурация Akamai (JSON)</label>
                        <input type="file" id="configFile" accept=".json,application/json">

                        <button class="btn btn-block" id="analyzeBtn" disabled>🔍 Анализировать</button>
                    </div>
                </div>

                <div class="card">
                    <div class="card-header">📊 Статистика сессии</div>
                    <div class="stats-row" style="padding-top: 1.2rem;">
                        <div class="stat">
                            <div class="stat-number" id="statTotal">0</div>
                            <div class="stat-label">Анализов</div>
                        </div>
                        <div class="stat">
                            <div class="stat-number" id="statFailed">0</div>
                            <div class="stat-label">Ошибок</div>
                        </div>
                        <div class="stat">
                            <div class="stat-number" id="statAvg">0</div>
                            <div class="stat-label">Среднее, мс</div>
                        </div>
                    </div>
                </div>
            </div>

            <div>
                <div class="card">
                    <div class="card-header">🛡️ Правила безопасности</div>
                    <div class="card-body">
                        <div id="defaultRules"></div>
                        <div id="customRules"></div>
                        <div class="rule-add-row">
                            <input type="text" id="newRule" placeholder="Новое правило, например MY_CHECK: описание">
                            <button class="btn" id="addRuleBtn">➕</button>
                        </div>
                    </div>
                </div>

                <div class="card">
                    <div class="card-header">📋 Отчёт анализа</div>
                    <div class="status" id="status">Загрузите конфигурацию и введите API ключ</div>
                    <div class="card-body">
                        <div id="result" class="no-data">Пока нет результатов</div>
                    </div>
                </div>
            </div>
        </div>
    </div>

    <script>
        const analyzeBtn = document.getElementById('analyzeBtn');
        const apiKeyInput = document.getElementById('apiKey');
        const fileInput = document.getElementById('configFile');
        const statusEl = document.getElementById('status');

        // Кнопка активна только когда есть и файл, и ключ
        function updateButton() {
            analyzeBtn.disabled = !(fileInput.files.length && apiKeyInput.value.trim());
        }
        apiKeyInput.addEventListener('input', updateButton);
        fileInput.addEventListener('change', updateButton);

        async function loadRules() {
            const resp = await fetch('/api/rules');
            const data = await resp.json();

            document.getElementById('defaultRules').innerHTML =
                data.default_rules.map(r => '<div class="rule-item">✓ ' + escapeHtml(r) + '</div>').join('');

            document.getElementById('customRules').innerHTML =
                (data.custom_rules || []).map((r, i) =>
                    '<div class="rule-item custom">🔹 ' + escapeHtml(r) +
                    '<button class="rule-remove" onclick="removeRule(' + i + ')">✕</button></div>'
                ).join('');
        }

        async function addRule() {
            const input = document.getElementById('newRule');
            const rule = input.value.trim();
            if (!rule) return;

            await fetch('/api/rules', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ rule })
            });
            input.value = '';
            loadRules();
        }

        async function removeRule(i) {
            await fetch('/api/rules/' + i, { method: 'DELETE' });
            loadRules();
        }

        async function loadStats() {
            const resp = await fetch('/api/stats');
            const s = await resp.json();
            document.getElementById('statTotal').textContent = s.total_analyses || 0;
            document.getElementById('statFailed').textContent = s.failed_analyses || 0;
            document.getElementById('statAvg').textContent = Math.round(s.avg_processing_ms || 0);
        }

        async function analyze() {
            const form = new FormData();
            form.append('config', fileInput.files[0]);
            form.append('model', document.getElementById('model').value);
            form.append('api_key', apiKeyInput.value.trim());

            analyzeBtn.disabled = true;
            statusEl.className = 'status busy';
            statusEl.textContent = '⏳ Анализируем конфигурацию...';

            try {
                const resp = await fetch('/api/analyze', { method: 'POST', body: form });
                const data = await resp.json();

                if (!resp.ok) {
                    statusEl.className = 'status error';
                    statusEl.textContent = '❌ ' + (data.error || 'Analysis failed');
                    return;
                }

                statusEl.className = 'status';
                statusEl.textContent = '✅ Готово: ' + data.model_used + ', ' + data.processing_time_ms + ' мс';
                const result = document.getElementById('result');
                result.className = 'result';
                result.textContent = data.analysis;
            } catch (e) {
                statusEl.className = 'status error';
                statusEl.textContent = '❌ ' + e;
            } finally {
                updateButton();
                loadStats();
            }
        }

        function escapeHtml(s) {
            const div = document.createElement('div');
            div.textContent = s;
            return div.innerHTML;
        }

        // Live-статус через WebSocket
        function connectWS() {
            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            const ws = new WebSocket(proto + location.host + '/ws');
            ws.onmessage = (e) => {
                const msg = JSON.parse(e.data);
                if (msg.type === 'analysis_started') {
                    statusEl.className = 'status busy';
                    statusEl.textContent = '⏳ Модель ' + msg.data.model + ' анализирует...';
                }
            };
            ws.onclose = () => setTimeout(connectWS, 5000);
        }

        document.getElementById('addRuleBtn').addEventListener('click', addRule);
        document.getElementById('newRule').addEventListener('keydown', e => { if (e.key === 'Enter') addRule(); });
        analyzeBtn.addEventListener('click', analyze);

        loadRules();
        loadStats();
        connectWS();
    </script>
</body>
</html>`
}
